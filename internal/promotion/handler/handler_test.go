package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promo-console/internal/clients/promostore"
	"promo-console/internal/observability"
	"promo-console/internal/promotion"
	"promo-console/internal/promotion/processor"
)

// MockPromotionStore is a mock implementation of the promotion store
type MockPromotionStore struct {
	mock.Mock
}

func (m *MockPromotionStore) ListPromotions(ctx context.Context) ([]promotion.Promotion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]promotion.Promotion), args.Error(1)
}

func (m *MockPromotionStore) GetPromotion(ctx context.Context, id int64) (promotion.Promotion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(promotion.Promotion), args.Error(1)
}

func (m *MockPromotionStore) CreatePromotion(ctx context.Context, p promotion.Promotion) (promotion.Promotion, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(promotion.Promotion), args.Error(1)
}

func (m *MockPromotionStore) UpdatePromotion(ctx context.Context, id int64, p promotion.Promotion) (promotion.Promotion, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(promotion.Promotion), args.Error(1)
}

func (m *MockPromotionStore) DeletePromotion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestRouter(store *MockPromotionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := observability.NewLogger()
	h := New(processor.New(store, logger, nil), logger, nil)
	router := gin.New()
	router.GET("/api/promotions", h.HandleList)
	router.POST("/api/promotions", h.HandleCreate)
	router.GET("/api/promotions/:id", h.HandleGet)
	router.PUT("/api/promotions/:id", h.HandleUpdate)
	router.DELETE("/api/promotions/:id", h.HandleDelete)
	router.GET("/api/promotion-types", h.HandleTypes)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleList(t *testing.T) {
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
	router := newTestRouter(store)

	recorder := perform(router, http.MethodGet, "/api/promotions", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var details []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &details))
	require.Len(t, details, 1)
	settings, ok := details[0]["settings"].(map[string]any)
	require.True(t, ok, "settings must be a structured object, not a blob")
	assert.Equal(t, 25.0, settings["bonus_percentage"])
}

func TestHandleGet_NotFound(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("GetPromotion", mock.Anything, int64(404)).
		Return(promotion.Promotion{}, promostore.ErrNotFound)
	router := newTestRouter(store)

	recorder := perform(router, http.MethodGet, "/api/promotions/404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandleGet_BadID(t *testing.T) {
	router := newTestRouter(new(MockPromotionStore))

	recorder := perform(router, http.MethodGet, "/api/promotions/seven", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleCreate_ValidationErrorsReturnedTogether(t *testing.T) {
	store := new(MockPromotionStore)
	router := newTestRouter(store)

	recorder := perform(router, http.MethodPost, "/api/promotions", `{
		"type": "welcome_bonus",
		"priority": "50",
		"settings": {}
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var response struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_FAILED", response.Code)
	assert.Contains(t, response.Fields, "name")
	assert.Contains(t, response.Fields, "betting_types")
	assert.Contains(t, response.Fields, "bonus_percentage")
	store.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
}

func TestHandleCreate_UnknownType(t *testing.T) {
	router := newTestRouter(new(MockPromotionStore))

	recorder := perform(router, http.MethodPost, "/api/promotions", `{"type": "mystery"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_TYPE")
}

func TestHandleCreate_Success(t *testing.T) {
	store := new(MockPromotionStore)
	var sent promotion.Promotion
	store.On("CreatePromotion", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(promotion.Promotion)
		}).
		Return(promotion.Promotion{ID: 7, Name: "Refund Ladder", Type: promotion.TypeLoseAllRefund}, nil)
	router := newTestRouter(store)

	recorder := perform(router, http.MethodPost, "/api/promotions", `{
		"type": "lose_all_refund",
		"name": "Refund Ladder",
		"priority": "10",
		"is_active": true,
		"schedule_days": [0, 5, 6, 9],
		"settings": {
			"tiers": [
				{"pairs": 5, "multiplier": 2.0},
				{"pairs": 3, "multiplier": 1.5}
			],
			"betting_types": ["all"],
			"market_types": ["handicap"],
			"min_odds": "1.8"
		}
	}`)

	require.Equal(t, http.StatusCreated, recorder.Code)

	assert.Equal(t, []int{5, 6}, sent.ScheduleDays)
	settings, ok := promotion.DecodeSettings(sent.Settings)
	require.True(t, ok)
	require.Len(t, settings.Tiers, 2)
	assert.Equal(t, 5, *settings.Tiers[0].Pairs)
	assert.Equal(t, []string{"all"}, settings.BettingTypes)
	assert.Equal(t, []string{"handicap"}, settings.MarketTypes)
	require.NotNil(t, settings.MinOdds)
	assert.Equal(t, 1.8, *settings.MinOdds)
}

func TestHandleUpdate_KeepsStoredType(t *testing.T) {
	pct := 10.0
	record := promotion.Promotion{
		ID:       42,
		Name:     "Weekly Cashback",
		Type:     promotion.TypeCashback,
		Priority: 50,
		Settings: promotion.EncodeSettings(promotion.TypeCashback, promotion.Settings{
			CashbackPercentage: &pct,
			BettingTypes:       []string{"all"},
		}),
	}
	store := new(MockPromotionStore)
	store.On("GetPromotion", mock.Anything, int64(42)).Return(record, nil)
	var sent promotion.Promotion
	store.On("UpdatePromotion", mock.Anything, int64(42), mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(promotion.Promotion)
		}).
		Return(record, nil)
	router := newTestRouter(store)

	recorder := perform(router, http.MethodPut, "/api/promotions/42", `{
		"type": "welcome_bonus",
		"name": "Weekly Cashback",
		"priority": "50",
		"settings": {
			"cashback_percentage": "25",
			"betting_types": ["all"]
		}
	}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, promotion.TypeCashback, sent.Type, "stored type wins over the body")
}

func TestHandleDelete(t *testing.T) {
	store := new(MockPromotionStore)
	store.On("DeletePromotion", mock.Anything, int64(5)).Return(nil)
	router := newTestRouter(store)

	recorder := perform(router, http.MethodDelete, "/api/promotions/5", "")

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	store.AssertExpectations(t)
}

func TestHandleTypes(t *testing.T) {
	router := newTestRouter(new(MockPromotionStore))

	recorder := perform(router, http.MethodGet, "/api/promotion-types", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var schemas []struct {
		Type   string `json:"type"`
		Fields []struct {
			Key      string `json:"key"`
			Required bool   `json:"required"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &schemas))
	require.Len(t, schemas, 6)
	assert.Equal(t, "welcome_bonus", schemas[0].Type)
	require.NotEmpty(t, schemas[0].Fields)
	assert.Equal(t, "bonus_percentage", schemas[0].Fields[0].Key)
}
