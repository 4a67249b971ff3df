package promostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"promo-console/internal/metrics"
	"promo-console/internal/observability"
	"promo-console/internal/promotion"
)

// ErrNotFound is returned when the store reports no promotion for an id.
var ErrNotFound = errors.New("promotion not found")

// Payout is one promotion payout record as returned by the store.
type Payout struct {
	ID          int64    `json:"id"`
	PromotionID int64    `json:"promotion_id"`
	UserID      string   `json:"user_id"`
	Amount      float64  `json:"amount"`
	Status      string   `json:"status"`
	BillID      *string  `json:"bill_id,omitempty"`
	PaidAt      *string  `json:"paid_at,omitempty"`
	CreatedAt   *string  `json:"created_at,omitempty"`
}

// Payout statuses as the store reports them.
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
)

// Client talks to the external promotion store over HTTP. Any non-success
// response is reported as an opaque failure; the console never interprets
// store error bodies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
	metrics    *metrics.Metrics
}

// New creates a promotion store client. Metrics may be nil in tests.
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

// ListPromotions fetches every promotion record.
func (c *Client) ListPromotions(ctx context.Context) ([]promotion.Promotion, error) {
	var promotions []promotion.Promotion
	if err := c.do(ctx, http.MethodGet, "/api/promotions", nil, &promotions, "list"); err != nil {
		return nil, err
	}
	return promotions, nil
}

// GetPromotion fetches one promotion by id.
func (c *Client) GetPromotion(ctx context.Context, id int64) (promotion.Promotion, error) {
	var p promotion.Promotion
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/promotions/%d", id), nil, &p, "get"); err != nil {
		return promotion.Promotion{}, err
	}
	return p, nil
}

// CreatePromotion persists a new promotion and returns the stored record.
func (c *Client) CreatePromotion(ctx context.Context, p promotion.Promotion) (promotion.Promotion, error) {
	var created promotion.Promotion
	if err := c.do(ctx, http.MethodPost, "/api/promotions", p, &created, "create"); err != nil {
		return promotion.Promotion{}, err
	}
	return created, nil
}

// UpdatePromotion replaces an existing promotion and returns the stored record.
func (c *Client) UpdatePromotion(ctx context.Context, id int64, p promotion.Promotion) (promotion.Promotion, error) {
	var updated promotion.Promotion
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/promotions/%d", id), p, &updated, "update"); err != nil {
		return promotion.Promotion{}, err
	}
	return updated, nil
}

// DeletePromotion removes a promotion by id.
func (c *Client) DeletePromotion(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/promotions/%d", id), nil, nil, "delete")
}

// ListPayouts fetches payout records, optionally filtered to one user.
func (c *Client) ListPayouts(ctx context.Context, userID string) ([]Payout, error) {
	path := "/api/promotion-payouts"
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}
	var payouts []Payout
	if err := c.do(ctx, http.MethodGet, path, nil, &payouts, "list_payouts"); err != nil {
		return nil, err
	}
	return payouts, nil
}

// ListPayoutsByPromotion fetches payout records for one promotion, optionally
// filtered to one user.
func (c *Client) ListPayoutsByPromotion(ctx context.Context, promotionID int64, userID string) ([]Payout, error) {
	path := fmt.Sprintf("/api/promotion-payouts/promotion/%d", promotionID)
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}
	var payouts []Payout
	if err := c.do(ctx, http.MethodGet, path, nil, &payouts, "list_payouts"); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, operation string) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "store_operation", Value: operation},
	)

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.Error(ctx, "failed to marshal store request", err)
			return fmt.Errorf("failed to prepare store request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Error(ctx, "failed to create store request", err)
		return fmt.Errorf("failed to create store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count(operation, "error")
		c.logger.Error(ctx, "promotion store request failed", err)
		return fmt.Errorf("promotion store unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.count(operation, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error(ctx, "promotion store returned non-success status",
			fmt.Errorf("status %d", resp.StatusCode))
		return fmt.Errorf("promotion store returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error(ctx, "failed to parse store response", err)
		return fmt.Errorf("failed to parse store response: %w", err)
	}
	return nil
}

func (c *Client) count(operation, status string) {
	if c.metrics != nil {
		c.metrics.StoreRequests.WithLabelValues(operation, status).Inc()
	}
}
