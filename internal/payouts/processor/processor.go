package processor

import (
	"context"
	"errors"

	"promo-console/internal/clients/promostore"
	"promo-console/internal/observability"
)

// PayoutStore lists payout records from the promotion store.
type PayoutStore interface {
	ListPayouts(ctx context.Context, userID string) ([]promostore.Payout, error)
	ListPayoutsByPromotion(ctx context.Context, promotionID int64, userID string) ([]promostore.Payout, error)
}

var (
	ErrStoreRequest  = errors.New("payout store request failed")
	ErrInvalidStatus = errors.New("invalid payout status")
)

var knownStatuses = []string{
	promostore.PayoutStatusPending,
	promostore.PayoutStatusProcessing,
	promostore.PayoutStatusCompleted,
	promostore.PayoutStatusFailed,
}

// PayoutProcessor serves the payout history views of the console.
type PayoutProcessor struct {
	store  PayoutStore
	logger *observability.Logger
}

func New(store PayoutStore, logger *observability.Logger) *PayoutProcessor {
	return &PayoutProcessor{store: store, logger: logger}
}

// ListPayouts returns payout records, optionally filtered to one user and
// one status. The user filter is pushed to the store, the status filter is
// applied here.
func (p *PayoutProcessor) ListPayouts(ctx context.Context, userID, status string) ([]promostore.Payout, error) {
	if err := validStatus(status); err != nil {
		return nil, err
	}
	payouts, err := p.store.ListPayouts(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to list payouts", err)
		return nil, ErrStoreRequest
	}
	return filterByStatus(payouts, status), nil
}

// ListPayoutsByPromotion returns payout records of one promotion.
func (p *PayoutProcessor) ListPayoutsByPromotion(ctx context.Context, promotionID int64, userID, status string) ([]promostore.Payout, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "promotion_id", Value: promotionID})

	if err := validStatus(status); err != nil {
		return nil, err
	}
	payouts, err := p.store.ListPayoutsByPromotion(ctx, promotionID, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to list promotion payouts", err)
		return nil, ErrStoreRequest
	}
	return filterByStatus(payouts, status), nil
}

func validStatus(status string) error {
	if status == "" {
		return nil
	}
	for _, known := range knownStatuses {
		if status == known {
			return nil
		}
	}
	return ErrInvalidStatus
}

func filterByStatus(payouts []promostore.Payout, status string) []promostore.Payout {
	if status == "" {
		return payouts
	}
	filtered := make([]promostore.Payout, 0, len(payouts))
	for _, payout := range payouts {
		if payout.Status == status {
			filtered = append(filtered, payout)
		}
	}
	return filtered
}
