package processor

import (
	"context"
	"errors"

	"promo-console/internal/clients/promostore"
	"promo-console/internal/metrics"
	"promo-console/internal/observability"
	"promo-console/internal/promotion"
)

// PromotionStore defines the store operations required by PromotionProcessor.
type PromotionStore interface {
	ListPromotions(ctx context.Context) ([]promotion.Promotion, error)
	GetPromotion(ctx context.Context, id int64) (promotion.Promotion, error)
	CreatePromotion(ctx context.Context, p promotion.Promotion) (promotion.Promotion, error)
	UpdatePromotion(ctx context.Context, id int64, p promotion.Promotion) (promotion.Promotion, error)
	DeletePromotion(ctx context.Context, id int64) error
}

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrInvalidType       = errors.New("invalid promotion type")
	// ErrStoreRequest is the single opaque failure surfaced when the store
	// rejects or drops a request. The draft that produced it stays intact.
	ErrStoreRequest = errors.New("promotion store request failed")
	// ErrDraftSubmitted guards the terminal state: a submitted draft
	// instance is never reused.
	ErrDraftSubmitted = errors.New("draft already submitted")
)

// PromotionProcessor owns the console's promotion operations: listing and
// loading records with settings decoded to the structured form, deleting, and
// submitting form drafts.
type PromotionProcessor struct {
	store   PromotionStore
	logger  *observability.Logger
	metrics *metrics.Metrics
}

// New creates a PromotionProcessor. Metrics may be nil in tests.
func New(store PromotionStore, logger *observability.Logger, m *metrics.Metrics) *PromotionProcessor {
	return &PromotionProcessor{
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// decode runs the tolerant settings codec and counts silent fallbacks.
func (p *PromotionProcessor) decode(rec promotion.Promotion) promotion.Detail {
	settings, ok := promotion.DecodeSettings(rec.Settings)
	if !ok && p.metrics != nil {
		p.metrics.SettingsDecodeFallbacks.Inc()
	}
	rec.Settings = nil
	return promotion.Detail{Promotion: rec, Settings: settings}
}

// ListPromotions returns every promotion with structured settings. When
// activeOnly is set, inactive promotions are filtered out.
func (p *PromotionProcessor) ListPromotions(ctx context.Context, activeOnly bool) ([]promotion.Detail, error) {
	records, err := p.store.ListPromotions(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list promotions", err)
		return nil, ErrStoreRequest
	}

	details := make([]promotion.Detail, 0, len(records))
	for _, rec := range records {
		if activeOnly && !rec.IsActive {
			continue
		}
		details = append(details, p.decode(rec))
	}
	return details, nil
}

// GetPromotion returns one promotion with structured settings.
func (p *PromotionProcessor) GetPromotion(ctx context.Context, id int64) (promotion.Detail, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "promotion_id", Value: id})

	rec, err := p.store.GetPromotion(ctx, id)
	if err != nil {
		if errors.Is(err, promostore.ErrNotFound) {
			return promotion.Detail{}, ErrPromotionNotFound
		}
		p.logger.Error(ctx, "failed to get promotion", err)
		return promotion.Detail{}, ErrStoreRequest
	}
	return p.decode(rec), nil
}

// DeletePromotion removes a promotion from the store.
func (p *PromotionProcessor) DeletePromotion(ctx context.Context, id int64) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "promotion_id", Value: id})

	if err := p.store.DeletePromotion(ctx, id); err != nil {
		if errors.Is(err, promostore.ErrNotFound) {
			return ErrPromotionNotFound
		}
		p.logger.Error(ctx, "failed to delete promotion", err)
		return ErrStoreRequest
	}
	p.logger.Info(ctx, "promotion deleted")
	return nil
}
