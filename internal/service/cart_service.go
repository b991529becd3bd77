package service

import (
	"context"
	"fmt"
	"time"

	"github.com/glowmart/storefront/internal/adapter/nats"
	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/platform/metrics"
)

// CartService fronts the per-session cart stores for the HTTP surface. It
// resolves the product being added through the catalog so the line item
// snapshots name and price at add time.
type CartService interface {
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (entity.CartSnapshot, error)
	UpdateItemQuantity(ctx context.Context, sessionID, productID string, newQuantity int) (entity.CartSnapshot, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (entity.CartSnapshot, error)
	GetCart(ctx context.Context, sessionID string) (entity.CartSnapshot, error)
	ClearCart(ctx context.Context, sessionID string) (entity.CartSnapshot, error)
}

type cartService struct {
	carts     *cart.Manager
	catalog   CatalogService
	publisher nats.EventPublisher
	metrics   *metrics.Manager
	log       logger.Logger
}

func NewCartService(carts *cart.Manager, catalog CatalogService, pub nats.EventPublisher, m *metrics.Manager, log logger.Logger) CartService {
	return &cartService{
		carts:     carts,
		catalog:   catalog,
		publisher: pub,
		metrics:   m,
		log:       log,
	}
}

type cartClearedEvent struct {
	SessionID string    `json:"session_id"`
	ItemCount int       `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	ClearedAt time.Time `json:"cleared_at"`
}

func (s *cartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (entity.CartSnapshot, error) {
	s.log.Infof("Adding item to cart: Session=%s, ProductID=%s, Quantity=%d", sessionID, productID, quantity)

	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return entity.CartSnapshot{}, err
	}

	product, err := s.catalog.GetPurchasableProduct(ctx, productID)
	if err != nil {
		s.log.Warnf("Product lookup failed for %s: %v", productID, err)
		return store.Snapshot(), err
	}

	snap, err := store.AddItem(ctx, product, quantity)
	if err != nil {
		return snap, fmt.Errorf("could not add item to cart: %w", err)
	}
	s.metrics.CartItemsAddedTotal.Inc()
	return snap, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, sessionID, productID string, newQuantity int) (entity.CartSnapshot, error) {
	s.log.Infof("Updating item quantity: Session=%s, ProductID=%s, NewQuantity=%d", sessionID, productID, newQuantity)

	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return entity.CartSnapshot{}, err
	}
	return store.UpdateQuantity(ctx, productID, newQuantity)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (entity.CartSnapshot, error) {
	s.log.Infof("Removing item from cart: Session=%s, ProductID=%s", sessionID, productID)

	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return entity.CartSnapshot{}, err
	}
	snap, removed := store.RemoveItem(ctx, productID)
	if removed {
		s.metrics.CartItemsRemovedTotal.Inc()
	}
	return snap, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (entity.CartSnapshot, error) {
	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return entity.CartSnapshot{}, err
	}
	return store.Snapshot(), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (entity.CartSnapshot, error) {
	s.log.Infof("Clearing cart for session %s", sessionID)

	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return entity.CartSnapshot{}, err
	}

	before := store.Snapshot()
	snap := store.Clear(ctx)
	s.metrics.CartsClearedTotal.Inc()

	event := cartClearedEvent{
		SessionID: sessionID,
		ItemCount: before.ItemCount,
		Subtotal:  before.Subtotal,
		ClearedAt: snap.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, nats.SubjectCartCleared, event); err != nil {
		s.log.Warnf("Failed to publish cart.cleared event for session %s: %v", sessionID, err)
	}
	return snap, nil
}
