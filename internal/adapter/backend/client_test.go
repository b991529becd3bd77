package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glowmart/storefront/internal/app/config"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, logger.NewNop())
}

func TestClient_ListProducts_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "serum", r.URL.Query().Get("q"))
		assert.Equal(t, "skincare", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		_ = json.NewEncoder(w).Encode(ProductPage{
			Products: []entity.Product{{ID: "p1", Name: "Rose Serum", Price: 29.90}},
			Total:    1,
			Page:     2,
		})
	})

	page, err := client.ListProducts(context.Background(), ProductQuery{Search: "serum", Category: "skincare", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Rose Serum", page.Products[0].Name)
}

func TestClient_GetProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(entity.Product{ID: "p1", Name: "Rose Serum", Price: 29.90, Status: "ACTIVE"})
	})

	product, err := client.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.True(t, product.IsActive())
}

func TestClient_SubmitOrder_SendsIdempotencyKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "idem-123", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SubmitOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req.UserID)
		require.Len(t, req.Items, 1)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.OrderConfirmation{OrderID: "ord-9", Status: entity.OrderStatusPendingPayment})
	})

	conf, err := client.SubmitOrder(context.Background(), SubmitOrderRequest{
		UserID:         "user-1",
		Items:          []entity.CartLineItem{{ProductID: "p1", Name: "Rose Serum", UnitPrice: 29.90, Quantity: 1}},
		Shipping:       entity.ShippingInfo{FullName: "Dana Reyes", Street: "12 Orchid Lane", City: "Portland", Country: "US"},
		Payment:        entity.PaymentMethod{Kind: "card"},
		IdempotencyKey: "idem-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-9", conf.OrderID)
}

func TestClient_NonSuccessStatusBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "coupon expired"})
	})

	_, err := client.SubmitOrder(context.Background(), SubmitOrderRequest{UserID: "user-1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "coupon expired", apiErr.Message)
}

func TestClient_TransportFailureWrapped(t *testing.T) {
	client := NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, logger.NewNop())

	_, err := client.GetProduct(context.Background(), "p1")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestClient_AdminAnalyticsSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/analytics/summary", r.URL.Path)
		_ = json.NewEncoder(w).Encode(entity.AnalyticsSummary{
			TotalOrders:  120,
			TotalRevenue: 4321.50,
			OrdersByStatus: map[string]int64{
				"PAID": 80,
			},
		})
	})

	summary, err := client.AnalyticsSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), summary.TotalOrders)
	assert.InDelta(t, 4321.50, summary.TotalRevenue, 1e-9)
}
