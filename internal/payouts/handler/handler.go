package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"promo-console/internal/apierrors"
	"promo-console/internal/observability"
	"promo-console/internal/payouts/processor"
)

type Handler struct {
	processor *processor.PayoutProcessor
	logger    *observability.Logger
}

func New(p *processor.PayoutProcessor, logger *observability.Logger) Handler {
	return Handler{processor: p, logger: logger}
}

// HandleList returns payout history, filterable with ?user_id= and ?status=.
func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	payouts, err := h.processor.ListPayouts(ctx, c.Query("user_id"), c.Query("status"))
	if err != nil {
		if errors.Is(err, processor.ErrInvalidStatus) {
			apierrors.BadRequest(c, "INVALID_STATUS", "Unknown payout status")
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.JSON(http.StatusOK, payouts)
}

// HandleListByPromotion returns payout history for one promotion.
func (h *Handler) HandleListByPromotion(c *gin.Context) {
	ctx := c.Request.Context()

	promotionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "Promotion id must be a number")
		return
	}

	payouts, err := h.processor.ListPayoutsByPromotion(ctx, promotionID, c.Query("user_id"), c.Query("status"))
	if err != nil {
		if errors.Is(err, processor.ErrInvalidStatus) {
			apierrors.BadRequest(c, "INVALID_STATUS", "Unknown payout status")
			return
		}
		apierrors.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Promotion store is unavailable", err)
		return
	}
	c.JSON(http.StatusOK, payouts)
}
