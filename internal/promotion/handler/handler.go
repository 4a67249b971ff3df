package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"promo-console/internal/apierrors"
	"promo-console/internal/metrics"
	"promo-console/internal/observability"
	"promo-console/internal/promotion"
	"promo-console/internal/promotion/processor"
)

type Handler struct {
	processor *processor.PromotionProcessor
	logger    *observability.Logger
	metrics   *metrics.Metrics
}

func New(p *processor.PromotionProcessor, logger *observability.Logger, m *metrics.Metrics) Handler {
	return Handler{processor: p, logger: logger, metrics: m}
}

// TierRequest mirrors one refund tier as submitted by the console. Blank
// inputs arrive as nulls.
type TierRequest struct {
	Pairs      *int     `json:"pairs"`
	Multiplier *float64 `json:"multiplier"`
}

// SettingsRequest carries the type-specific fields as entered. Numeric values
// come through as text, exactly what the inputs held; empty means unset.
type SettingsRequest struct {
	BonusPercentage        string        `json:"bonus_percentage"`
	CashbackPercentage     string        `json:"cashback_percentage"`
	BonusMultiplier        string        `json:"bonus_multiplier"`
	DepositBonusPercentage string        `json:"deposit_bonus_percentage"`
	MinDeposit             string        `json:"min_deposit"`
	ReferralBonusAmount    string        `json:"referral_bonus_amount"`
	RefereeBonusAmount     string        `json:"referee_bonus_amount"`
	Tiers                  []TierRequest `json:"tiers"`
	MinOdds                string        `json:"min_odds"`
	MinStake               string        `json:"min_stake"`
	MaxRefundAmount        string        `json:"max_refund_amount"`
	RefundDelayHours       string        `json:"refund_delay_hours"`
	RefundConditions       string        `json:"refund_conditions"`
	BettingTypes           []string      `json:"betting_types"`
	MarketTypes            []string      `json:"market_types"`
}

// PromotionRequest is the create/update body. Type is only honored on create;
// an existing promotion keeps its type no matter what the body says.
type PromotionRequest struct {
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	IsActive          bool            `json:"is_active"`
	Priority          string          `json:"priority"`
	IsStackable       bool            `json:"is_stackable"`
	StartsAt          string          `json:"starts_at"`
	EndsAt            string          `json:"ends_at"`
	ScheduleDays      []int           `json:"schedule_days"`
	ScheduleStartTime string          `json:"schedule_start_time"`
	ScheduleEndTime   string          `json:"schedule_end_time"`
	UserLimitTotal    string          `json:"user_limit_total"`
	UserLimitPerDay   string          `json:"user_limit_per_day"`
	GlobalQuota       string          `json:"global_quota"`
	GlobalBudget      string          `json:"global_budget"`
	MaxPayoutPerBill  string          `json:"max_payout_per_bill"`
	MaxPayoutPerDay   string          `json:"max_payout_per_day"`
	MaxPayoutPerUser  string          `json:"max_payout_per_user"`
	Settings          SettingsRequest `json:"settings"`
}

// HandleList returns every promotion, or only active ones with ?active=true.
func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	activeOnly := c.Query("active") == "true"
	details, err := h.processor.ListPromotions(ctx, activeOnly)
	if err != nil {
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// HandleGet returns one promotion with decoded settings.
func (h *Handler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.promotionID(c)
	if !ok {
		return
	}
	detail, err := h.processor.GetPromotion(ctx, id)
	if err != nil {
		if errors.Is(err, processor.ErrPromotionNotFound) {
			apierrors.NotFound(c, "Promotion not found")
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// HandleCreate validates and persists a new promotion draft.
func (h *Handler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind request", err)
		apierrors.ValidationError(c, err)
		return
	}

	form, err := h.processor.NewForm(promotion.Type(req.Type))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_TYPE", "Unknown promotion type")
		return
	}
	h.apply(form, req)
	h.submit(c, form, http.StatusCreated)
}

// HandleUpdate validates and persists changes to an existing promotion.
func (h *Handler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.promotionID(c)
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind request", err)
		apierrors.ValidationError(c, err)
		return
	}

	form, err := h.processor.EditForm(ctx, id)
	if err != nil {
		if errors.Is(err, processor.ErrPromotionNotFound) {
			apierrors.NotFound(c, "Promotion not found")
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	h.apply(form, req)
	h.submit(c, form, http.StatusOK)
}

// HandleDelete removes a promotion.
func (h *Handler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.promotionID(c)
	if !ok {
		return
	}
	if err := h.processor.DeletePromotion(ctx, id); err != nil {
		if errors.Is(err, processor.ErrPromotionNotFound) {
			apierrors.NotFound(c, "Promotion not found")
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleTypes returns the promotion types and their settings field schemas,
// which the console uses to render the per-type form sections.
func (h *Handler) HandleTypes(c *gin.Context) {
	type fieldSchema struct {
		Key      string   `json:"key"`
		Kind     string   `json:"kind"`
		Min      *float64 `json:"min,omitempty"`
		Max      *float64 `json:"max,omitempty"`
		Required bool     `json:"required"`
	}
	type typeSchema struct {
		Type   string        `json:"type"`
		Fields []fieldSchema `json:"fields"`
	}

	schemas := make([]typeSchema, 0, len(promotion.Types))
	for _, t := range promotion.Types {
		specs := promotion.FieldsFor(t)
		fields := make([]fieldSchema, 0, len(specs))
		for _, spec := range specs {
			fields = append(fields, fieldSchema{
				Key:      spec.Key,
				Kind:     string(spec.Kind),
				Min:      spec.Min,
				Max:      spec.Max,
				Required: spec.Required,
			})
		}
		schemas = append(schemas, typeSchema{Type: string(t), Fields: fields})
	}
	c.JSON(http.StatusOK, schemas)
}

// apply copies the request body onto the form draft through its setters.
func (h *Handler) apply(form *processor.FormController, req PromotionRequest) {
	form.SetName(req.Name)
	form.SetActive(req.IsActive)
	form.SetPriority(req.Priority)
	form.SetStackable(req.IsStackable)
	form.SetStartsAt(req.StartsAt)
	form.SetEndsAt(req.EndsAt)
	form.SetScheduleDays(req.ScheduleDays)
	form.SetScheduleStartTime(req.ScheduleStartTime)
	form.SetScheduleEndTime(req.ScheduleEndTime)
	form.SetLimit("user_limit_total", req.UserLimitTotal)
	form.SetLimit("user_limit_per_day", req.UserLimitPerDay)
	form.SetLimit("global_quota", req.GlobalQuota)
	form.SetLimit("global_budget", req.GlobalBudget)
	form.SetLimit("max_payout_per_bill", req.MaxPayoutPerBill)
	form.SetLimit("max_payout_per_day", req.MaxPayoutPerDay)
	form.SetLimit("max_payout_per_user", req.MaxPayoutPerUser)

	s := req.Settings
	form.SetSettingValue("bonus_percentage", s.BonusPercentage)
	form.SetSettingValue("cashback_percentage", s.CashbackPercentage)
	form.SetSettingValue("bonus_multiplier", s.BonusMultiplier)
	form.SetSettingValue("deposit_bonus_percentage", s.DepositBonusPercentage)
	form.SetSettingValue("min_deposit", s.MinDeposit)
	form.SetSettingValue("referral_bonus_amount", s.ReferralBonusAmount)
	form.SetSettingValue("referee_bonus_amount", s.RefereeBonusAmount)
	form.SetSettingValue("min_odds", s.MinOdds)
	form.SetSettingValue("min_stake", s.MinStake)
	form.SetSettingValue("max_refund_amount", s.MaxRefundAmount)
	form.SetSettingValue("refund_delay_hours", s.RefundDelayHours)
	form.SetSettingValue("refund_conditions", s.RefundConditions)

	tiers := make([]promotion.Tier, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		tiers = append(tiers, promotion.Tier{Pairs: t.Pairs, Multiplier: t.Multiplier})
	}
	form.ReplaceTiers(tiers)
	form.ReplaceBettingTypes(s.BettingTypes)
	form.ReplaceMarketTypes(s.MarketTypes)
}

func (h *Handler) submit(c *gin.Context, form *processor.FormController, successStatus int) {
	ctx := c.Request.Context()

	detail, err := form.Submit(ctx)
	if err != nil {
		var validationErr *promotion.ValidationError
		if errors.As(err, &validationErr) {
			if h.metrics != nil {
				h.metrics.SubmitValidationFailures.WithLabelValues(string(form.Type())).Inc()
			}
			apierrors.FieldValidation(c, validationErr.Fields)
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.JSON(successStatus, detail)
}

func (h *Handler) promotionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Promotion id must be a number")
		return 0, false
	}
	return id, true
}
