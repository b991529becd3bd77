package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glowmart/storefront/internal/app/config"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
)

// Client consumes the platform backend's REST contract. The storefront owns no
// server-side state behind it; every call here is a remote read or a remote
// command.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(cfg config.BackendConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// APIError is a non-2xx answer from the backend. It is retryable from the
// user's point of view; cart state is never mutated because of one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, headers map[string]string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request for %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil {
			if eb.Message != "" {
				apiErr.Message = eb.Message
			} else if eb.Error != "" {
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
	}
	return nil
}

type ProductQuery struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

type ProductPage struct {
	Products []entity.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/api/products", q.values(), nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), nil, nil, &product, nil); err != nil {
		return nil, err
	}
	return &product, nil
}

// SubmitOrderRequest carries a cart snapshot plus the shipping and payment
// details collected at checkout.
type SubmitOrderRequest struct {
	UserID         string                `json:"user_id"`
	Items          []entity.CartLineItem `json:"items"`
	Shipping       entity.ShippingInfo   `json:"shipping"`
	Payment        entity.PaymentMethod  `json:"payment"`
	CouponCode     string                `json:"coupon_code,omitempty"`
	IdempotencyKey string                `json:"-"`
}

func (c *Client) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*entity.OrderConfirmation, error) {
	headers := map[string]string{}
	if req.IdempotencyKey != "" {
		headers["Idempotency-Key"] = req.IdempotencyKey
	}

	var conf entity.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &conf, headers); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) ListOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	q := url.Values{}
	q.Set("user_id", userID)

	var orders []entity.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", q, nil, &orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	var order entity.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, nil, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}
