package bootstrap

import (
	"context"

	"promo-console/internal/auth"
	"promo-console/internal/clients/evaluator"
	"promo-console/internal/clients/promostore"
	"promo-console/internal/config"
	evaluationHandler "promo-console/internal/evaluation/handler"
	evaluationProcessor "promo-console/internal/evaluation/processor"
	"promo-console/internal/metrics"
	"promo-console/internal/observability"
	payoutHandler "promo-console/internal/payouts/handler"
	payoutProcessor "promo-console/internal/payouts/processor"
	promotionHandler "promo-console/internal/promotion/handler"
	promotionProcessor "promo-console/internal/promotion/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger  *observability.Logger
	Metrics *metrics.Metrics
	Guard   *auth.Guard

	// Clients
	StoreClient     *promostore.Client
	EvaluatorClient *evaluator.Client

	// Handlers
	PromotionHandler  promotionHandler.Handler
	EvaluationHandler evaluationHandler.Handler
	PayoutHandler     payoutHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:  logger,
		Metrics: metrics.New("promo_console"),
	}

	deps.Guard = auth.New(cfg.Auth.JWTSecret, logger)

	deps.StoreClient = promostore.New(cfg.Services.PromotionStoreURL, cfg.Services.RequestTimeout, logger, deps.Metrics)
	deps.EvaluatorClient = evaluator.New(cfg.Services.EvaluationServiceURL, cfg.Services.RequestTimeout, logger, deps.Metrics)

	promoProc := promotionProcessor.New(deps.StoreClient, logger, deps.Metrics)
	deps.PromotionHandler = promotionHandler.New(promoProc, logger, deps.Metrics)

	evalProc := evaluationProcessor.New(deps.EvaluatorClient, logger)
	deps.EvaluationHandler = evaluationHandler.New(evalProc, logger)

	payoutProc := payoutProcessor.New(deps.StoreClient, logger)
	deps.PayoutHandler = payoutHandler.New(payoutProc, logger)

	if deps.Guard.IsEnabled() {
		logger.Info(ctx, "admin token guard enabled")
	} else {
		logger.Info(ctx, "admin token guard disabled, no ADMIN_JWT_SECRET configured")
	}

	return deps, nil
}
