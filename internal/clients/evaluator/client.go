package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"promo-console/internal/evaluation"
	"promo-console/internal/metrics"
	"promo-console/internal/observability"
)

// Client talks to the external evaluation service. The service performs the
// actual payout arithmetic; the console only ships the request and renders
// the structured result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
	metrics    *metrics.Metrics
}

// New creates an evaluation service client. Metrics may be nil in tests.
func New(baseURL string, timeout time.Duration, logger *observability.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// Evaluate runs a trial evaluation against the service.
func (c *Client) Evaluate(ctx context.Context, request evaluation.Request) (evaluation.Result, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "promotion_id", Value: request.PromotionID},
		observability.Field{Key: "selections", Value: len(request.Selections)},
	)

	payload, err := json.Marshal(request)
	if err != nil {
		c.logger.Error(ctx, "failed to marshal evaluation request", err)
		return evaluation.Result{}, fmt.Errorf("failed to prepare evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/promotion/evaluate", bytes.NewBuffer(payload))
	if err != nil {
		c.logger.Error(ctx, "failed to create evaluation request", err)
		return evaluation.Result{}, fmt.Errorf("failed to create evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count("error")
		c.logger.Error(ctx, "evaluation service request failed", err)
		return evaluation.Result{}, fmt.Errorf("evaluation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.count("failure")
		c.logger.Error(ctx, "evaluation service returned non-success status",
			fmt.Errorf("status %d", resp.StatusCode))
		return evaluation.Result{}, fmt.Errorf("evaluation service returned status %d", resp.StatusCode)
	}

	var result evaluation.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.count("failure")
		c.logger.Error(ctx, "failed to parse evaluation response", err)
		return evaluation.Result{}, fmt.Errorf("failed to parse evaluation response: %w", err)
	}

	c.count("success")
	c.logger.Info(ctx, "evaluation completed")
	return result, nil
}

func (c *Client) count(status string) {
	if c.metrics != nil {
		c.metrics.EvaluatorRequests.WithLabelValues(status).Inc()
	}
}
