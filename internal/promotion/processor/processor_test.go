package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promo-console/internal/clients/promostore"
	"promo-console/internal/promotion"
)

func TestListPromotions_DecodesSettings(t *testing.T) {
	pct := 25.0
	store := new(MockPromotionStore)
	store.On("ListPromotions", mock.Anything).Return([]promotion.Promotion{
		{
			ID:       1,
			Name:     "Welcome",
			Type:     promotion.TypeWelcomeBonus,
			IsActive: true,
			Settings: promotion.EncodeSettings(promotion.TypeWelcomeBonus, promotion.Settings{BonusPercentage: &pct}),
		},
	}, nil)
	p := newTestProcessor(store)

	details, err := p.ListPromotions(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Settings.BonusPercentage)
	assert.Equal(t, 25.0, *details[0].Settings.BonusPercentage)
	assert.Nil(t, details[0].Promotion.Settings)
}

func TestListPromotions_ActiveOnlyFilters(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("ListPromotions", mock.Anything).Return([]promotion.Promotion{
		{ID: 1, Name: "Live", IsActive: true},
		{ID: 2, Name: "Paused", IsActive: false},
	}, nil)
	p := newTestProcessor(store)

	details, err := p.ListPromotions(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, int64(1), details[0].ID)
}

func TestListPromotions_GarbageSettingsDecodeEmpty(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("ListPromotions", mock.Anything).Return([]promotion.Promotion{
		{ID: 1, Name: "Broken", Settings: json.RawMessage(`"{\"type\": oops}"`)},
	}, nil)
	p := newTestProcessor(store)

	details, err := p.ListPromotions(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, promotion.Settings{}, details[0].Settings)
}

func TestListPromotions_StoreError(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("ListPromotions", mock.Anything).Return([]promotion.Promotion(nil), errors.New("boom"))
	p := newTestProcessor(store)

	_, err := p.ListPromotions(context.Background(), false)

	assert.ErrorIs(t, err, ErrStoreRequest)
}

func TestGetPromotion_NotFound(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("GetPromotion", mock.Anything, int64(404)).
		Return(promotion.Promotion{}, promostore.ErrNotFound)
	p := newTestProcessor(store)

	_, err := p.GetPromotion(context.Background(), 404)

	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestDeletePromotion(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("DeletePromotion", mock.Anything, int64(5)).Return(nil)
	p := newTestProcessor(store)

	require.NoError(t, p.DeletePromotion(context.Background(), 5))
	store.AssertExpectations(t)
}

func TestDeletePromotion_NotFound(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("DeletePromotion", mock.Anything, int64(5)).Return(promostore.ErrNotFound)
	p := newTestProcessor(store)

	err := p.DeletePromotion(context.Background(), 5)

	assert.ErrorIs(t, err, ErrPromotionNotFound)
}
