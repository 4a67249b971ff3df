package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promo-console/internal/clients/promostore"
	"promo-console/internal/observability"
)

// MockPayoutStore is a mock implementation of PayoutStore
type MockPayoutStore struct {
	mock.Mock
}

func (m *MockPayoutStore) ListPayouts(ctx context.Context, userID string) ([]promostore.Payout, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]promostore.Payout), args.Error(1)
}

func (m *MockPayoutStore) ListPayoutsByPromotion(ctx context.Context, promotionID int64, userID string) ([]promostore.Payout, error) {
	args := m.Called(ctx, promotionID, userID)
	return args.Get(0).([]promostore.Payout), args.Error(1)
}

func TestListPayouts_StatusFilter(t *testing.T) {
	store := new(MockPayoutStore)
	store.On("ListPayouts", mock.Anything, "").Return([]promostore.Payout{
		{ID: 1, Status: promostore.PayoutStatusCompleted},
		{ID: 2, Status: promostore.PayoutStatusPending},
		{ID: 3, Status: promostore.PayoutStatusCompleted},
	}, nil)
	p := New(store, observability.NewLogger())

	payouts, err := p.ListPayouts(context.Background(), "", promostore.PayoutStatusCompleted)

	require.NoError(t, err)
	require.Len(t, payouts, 2)
	assert.Equal(t, int64(1), payouts[0].ID)
	assert.Equal(t, int64(3), payouts[1].ID)
}

func TestListPayouts_InvalidStatus(t *testing.T) {
	store := new(MockPayoutStore)
	p := New(store, observability.NewLogger())

	_, err := p.ListPayouts(context.Background(), "", "refunded")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	store.AssertNotCalled(t, "ListPayouts", mock.Anything, mock.Anything)
}

func TestListPayouts_UserFilterPushedToStore(t *testing.T) {
	store := new(MockPayoutStore)
	store.On("ListPayouts", mock.Anything, "user-7").Return([]promostore.Payout{}, nil)
	p := New(store, observability.NewLogger())

	_, err := p.ListPayouts(context.Background(), "user-7", "")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestListPayouts_StoreError(t *testing.T) {
	store := new(MockPayoutStore)
	store.On("ListPayouts", mock.Anything, "").Return([]promostore.Payout(nil), errors.New("boom"))
	p := New(store, observability.NewLogger())

	_, err := p.ListPayouts(context.Background(), "", "")

	assert.ErrorIs(t, err, ErrStoreRequest)
}

func TestListPayoutsByPromotion(t *testing.T) {
	store := new(MockPayoutStore)
	store.On("ListPayoutsByPromotion", mock.Anything, int64(9), "").Return([]promostore.Payout{
		{ID: 1, PromotionID: 9, Status: promostore.PayoutStatusFailed},
		{ID: 2, PromotionID: 9, Status: promostore.PayoutStatusCompleted},
	}, nil)
	p := New(store, observability.NewLogger())

	payouts, err := p.ListPayoutsByPromotion(context.Background(), 9, "", promostore.PayoutStatusFailed)

	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, int64(1), payouts[0].ID)
}
