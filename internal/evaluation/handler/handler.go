package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promo-console/internal/apierrors"
	"promo-console/internal/evaluation"
	"promo-console/internal/evaluation/processor"
	"promo-console/internal/observability"
	"promo-console/internal/promotion"
)

type Handler struct {
	processor *processor.EvaluationProcessor
	logger    *observability.Logger
}

func New(p *processor.EvaluationProcessor, logger *observability.Logger) Handler {
	return Handler{processor: p, logger: logger}
}

// SelectionRequest is one hypothetical outcome as entered in the test form.
type SelectionRequest struct {
	Sport  string  `json:"sport"`
	Result string  `json:"result" binding:"omitempty,oneof=win lose draw"`
	Market string  `json:"market"`
	Period string  `json:"period"`
	Odds   float64 `json:"odds" binding:"omitempty,gt=0"`
}

// EvaluateRequest is the trial form as submitted. Stake and promotion id are
// pointers so an untouched field is distinguishable from a zero.
type EvaluateRequest struct {
	Stake       *float64           `json:"stake"`
	PromotionID *int64             `json:"promotion_id"`
	Selections  []SelectionRequest `json:"selections" binding:"omitempty,dive"`
}

// HandleEvaluate validates the trial form locally and, only when it is
// complete, forwards it to the evaluation service.
func (h *Handler) HandleEvaluate(c *gin.Context) {
	ctx := c.Request.Context()

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind request", err)
		apierrors.ValidationError(c, err)
		return
	}

	builder := evaluation.NewBuilder()
	if req.Stake != nil {
		builder.SetStake(*req.Stake)
	}
	if req.PromotionID != nil {
		builder.SetPromotionID(*req.PromotionID)
	}
	for i, sel := range req.Selections {
		if i > 0 {
			builder.AddSelection()
		}
		builder.SetSelection(i, evaluation.Selection{
			Sport:  sel.Sport,
			Result: sel.Result,
			Market: sel.Market,
			Period: sel.Period,
			Odds:   sel.Odds,
		})
	}

	request, err := builder.Build()
	if err != nil {
		var validationErr *promotion.ValidationError
		if errors.As(err, &validationErr) {
			apierrors.FieldValidation(c, validationErr.Fields)
			return
		}
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid evaluation request")
		return
	}

	result, err := h.processor.Evaluate(ctx, request)
	if err != nil {
		apierrors.ServiceUnavailable(c, "EVALUATOR_UNAVAILABLE", "Evaluation service is unavailable", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
