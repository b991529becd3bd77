package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glowmart/storefront/internal/adapter/memory"
	natsadapter "github.com/glowmart/storefront/internal/adapter/nats"
	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartServiceFixture(t *testing.T, namespace string, mockBackend *MockCatalogBackend) CartService {
	t.Helper()
	catalog := NewCatalogService(mockBackend, memory.NewProductCache(), time.Minute, logger.NewNop())
	manager := cart.NewManager(memory.NewCartRepository(), time.Hour, logger.NewNop())
	return NewCartService(manager, catalog, natsadapter.NopPublisher{}, metrics.NewManager(namespace), logger.NewNop())
}

func TestCartService_AddItem_SnapshotsCatalogPrice(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 29.90, Status: entity.ProductStatusActive}, nil)

	svc := newCartServiceFixture(t, "test_cart_add", mockBackend)

	snap, err := svc.AddItem(context.Background(), "sess-1", "p1", 2)
	require.NoError(t, err)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Rose Serum", snap.Items[0].Name)
	assert.Equal(t, 29.90, snap.Items[0].UnitPrice)
	assert.Equal(t, 2, snap.ItemCount)
	assert.InDelta(t, 59.80, snap.Subtotal, 1e-9)
}

func TestCartService_AddItem_UnavailableProduct(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p9").
		Return(&entity.Product{ID: "p9", Name: "Old Batch", Price: 5, Status: "INACTIVE"}, nil)

	svc := newCartServiceFixture(t, "test_cart_unavailable", mockBackend)

	snap, err := svc.AddItem(context.Background(), "sess-1", "p9", 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Empty(t, snap.Items)
}

func TestCartService_UpdateAndRemoveFlow(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 10, Status: entity.ProductStatusActive}, nil)
	mockBackend.On("GetProduct", mock.Anything, "p2").
		Return(&entity.Product{ID: "p2", Name: "Clay Mask", Price: 5, Status: entity.ProductStatusActive}, nil)

	svc := newCartServiceFixture(t, "test_cart_flow", mockBackend)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)
	snap, err := svc.AddItem(ctx, "sess-1", "p2", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.ItemCount)
	assert.InDelta(t, 20.0, snap.Subtotal, 1e-9)

	snap, err = svc.UpdateItemQuantity(ctx, "sess-1", "p2", 0)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "p1", snap.Items[0].ProductID)

	snap, err = svc.RemoveItem(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.ItemCount)
}

func TestCartService_ClearCart(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 10, Status: entity.ProductStatusActive}, nil)

	svc := newCartServiceFixture(t, "test_cart_clear", mockBackend)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)

	snap, err := svc.ClearCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.Subtotal)

	snap, err = svc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestCartService_RemoveItem_AbsentProductDoesNotCountAsRemoval(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 10, Status: entity.ProductStatusActive}, nil)

	m := metrics.NewManager("test_cart_remove_noop")
	catalog := NewCatalogService(mockBackend, memory.NewProductCache(), time.Minute, logger.NewNop())
	manager := cart.NewManager(memory.NewCartRepository(), time.Hour, logger.NewNop())
	svc := NewCartService(manager, catalog, natsadapter.NopPublisher{}, m, logger.NewNop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)

	snap, err := svc.RemoveItem(ctx, "sess-1", "missing")
	require.NoError(t, err, "removing an absent product is a no-op, not an error")
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CartItemsRemovedTotal))

	snap, err = svc.RemoveItem(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartItemsRemovedTotal))
}

func TestCartService_ClearCart_PublishesCartClearedEvent(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 10, Status: entity.ProductStatusActive}, nil)
	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", mock.Anything, natsadapter.SubjectCartCleared, mock.MatchedBy(func(e cartClearedEvent) bool {
		return e.SessionID == "sess-1" && e.ItemCount == 3 && e.Subtotal == 30.0
	})).Return(nil)

	catalog := NewCatalogService(mockBackend, memory.NewProductCache(), time.Minute, logger.NewNop())
	manager := cart.NewManager(memory.NewCartRepository(), time.Hour, logger.NewNop())
	svc := NewCartService(manager, catalog, mockPublisher, metrics.NewManager("test_cart_cleared_event"), logger.NewNop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 3)
	require.NoError(t, err)

	snap, err := svc.ClearCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	mockPublisher.AssertExpectations(t)
}

func TestCartService_ClearCart_PublishFailureIsNotFatal(t *testing.T) {
	mockBackend := new(MockCatalogBackend)
	mockBackend.On("GetProduct", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", Name: "Rose Serum", Price: 10, Status: entity.ProductStatusActive}, nil)
	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("nats unavailable"))

	catalog := NewCatalogService(mockBackend, memory.NewProductCache(), time.Minute, logger.NewNop())
	manager := cart.NewManager(memory.NewCartRepository(), time.Hour, logger.NewNop())
	svc := NewCartService(manager, catalog, mockPublisher, metrics.NewManager("test_cart_cleared_pub_fail"), logger.NewNop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)

	snap, err := svc.ClearCart(ctx, "sess-1")
	require.NoError(t, err, "a publish failure must not fail the clear")
	assert.Empty(t, snap.Items)
}
