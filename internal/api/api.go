package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promo-console/internal/auth"
	evaluationHandler "promo-console/internal/evaluation/handler"
	"promo-console/internal/metrics"
	payoutHandler "promo-console/internal/payouts/handler"
	promotionHandler "promo-console/internal/promotion/handler"
)

type API struct {
	router            *gin.RouterGroup
	guard             *auth.Guard
	promotionHandler  promotionHandler.Handler
	evaluationHandler evaluationHandler.Handler
	payoutHandler     payoutHandler.Handler
}

func New(
	router *gin.RouterGroup,
	guard *auth.Guard,
	promotionHandler promotionHandler.Handler,
	evaluationHandler evaluationHandler.Handler,
	payoutHandler payoutHandler.Handler,
) API {
	return API{
		router:            router,
		guard:             guard,
		promotionHandler:  promotionHandler,
		evaluationHandler: evaluationHandler,
		payoutHandler:     payoutHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", metrics.Handler())

	apiGroup := a.router.Group("/api")
	if a.guard.IsEnabled() {
		apiGroup.Use(a.guard.Middleware)
	}
	{
		apiGroup.GET("/promotions", a.promotionHandler.HandleList)
		apiGroup.POST("/promotions", a.promotionHandler.HandleCreate)
		apiGroup.GET("/promotions/:id", a.promotionHandler.HandleGet)
		apiGroup.PUT("/promotions/:id", a.promotionHandler.HandleUpdate)
		apiGroup.DELETE("/promotions/:id", a.promotionHandler.HandleDelete)
		apiGroup.GET("/promotion-types", a.promotionHandler.HandleTypes)

		apiGroup.POST("/promotion/evaluate", a.evaluationHandler.HandleEvaluate)

		apiGroup.GET("/promotion-payouts", a.payoutHandler.HandleList)
		apiGroup.GET("/promotion-payouts/promotion/:id", a.payoutHandler.HandleListByPromotion)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
