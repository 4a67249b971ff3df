package processor

import (
	"context"
	"errors"

	"promo-console/internal/evaluation"
	"promo-console/internal/observability"
)

// EvaluationClient runs trial evaluations against the evaluation service.
type EvaluationClient interface {
	Evaluate(ctx context.Context, request evaluation.Request) (evaluation.Result, error)
}

// ErrEvaluationFailed is the opaque failure surfaced when the evaluation
// service cannot be reached or rejects the request.
var ErrEvaluationFailed = errors.New("evaluation request failed")

// EvaluationProcessor forwards validated trial requests to the evaluation
// service. All payout arithmetic happens there; the result passes through
// untouched.
type EvaluationProcessor struct {
	client EvaluationClient
	logger *observability.Logger
}

func New(client EvaluationClient, logger *observability.Logger) *EvaluationProcessor {
	return &EvaluationProcessor{client: client, logger: logger}
}

// Evaluate runs one trial evaluation. The request must already have passed
// the builder's local validation; nothing is re-checked here.
func (p *EvaluationProcessor) Evaluate(ctx context.Context, request evaluation.Request) (evaluation.Result, error) {
	result, err := p.client.Evaluate(ctx, request)
	if err != nil {
		p.logger.Error(ctx, "trial evaluation failed", err)
		return evaluation.Result{}, ErrEvaluationFailed
	}
	return result, nil
}
