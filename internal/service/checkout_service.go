package service

import (
	"context"
	"fmt"
	"time"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/adapter/nats"
	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/platform/metrics"
	"github.com/google/uuid"
)

// CheckoutBackend is the slice of the backend client checkout needs.
type CheckoutBackend interface {
	SubmitOrder(ctx context.Context, req backend.SubmitOrderRequest) (*entity.OrderConfirmation, error)
}

type CheckoutRequest struct {
	Shipping   entity.ShippingInfo  `json:"shipping"`
	Payment    entity.PaymentMethod `json:"payment"`
	CouponCode string               `json:"coupon_code,omitempty"`
}

type CheckoutService interface {
	// Checkout snapshots the session's cart and submits it as an order. The
	// cart is cleared only after the backend confirms; on any failure it is
	// left untouched so the user can retry without losing work.
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*entity.OrderConfirmation, error)
}

type checkoutService struct {
	carts     *cart.Manager
	backend   CheckoutBackend
	publisher nats.EventPublisher
	metrics   *metrics.Manager
	log       logger.Logger
}

func NewCheckoutService(carts *cart.Manager, b CheckoutBackend, pub nats.EventPublisher, m *metrics.Manager, log logger.Logger) CheckoutService {
	return &checkoutService{
		carts:     carts,
		backend:   b,
		publisher: pub,
		metrics:   m,
		log:       log,
	}
}

type orderPlacedEvent struct {
	OrderID   string    `json:"order_id"`
	SessionID string    `json:"session_id"`
	ItemCount int       `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	PlacedAt  time.Time `json:"placed_at"`
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*entity.OrderConfirmation, error) {
	if err := req.Shipping.Validate(); err != nil {
		return nil, err
	}
	if err := req.Payment.Validate(); err != nil {
		return nil, err
	}

	store, err := s.carts.ForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return nil, &entity.ValidationError{Field: "cart", Reason: "cannot check out an empty cart"}
	}

	s.log.Infof("Submitting order for session %s: %d items, subtotal %.2f", sessionID, snap.ItemCount, snap.Subtotal)
	confirmation, err := s.backend.SubmitOrder(ctx, backend.SubmitOrderRequest{
		UserID:         sessionID,
		Items:          snap.Items,
		Shipping:       req.Shipping,
		Payment:        req.Payment,
		CouponCode:     req.CouponCode,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		// Cart stays intact; the user retries without re-entering anything.
		s.metrics.CheckoutFailuresTotal.Inc()
		s.log.Errorf("Order submission failed for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	store.Clear(ctx)
	s.metrics.OrdersPlacedTotal.Inc()
	s.log.Infof("Order %s confirmed for session %s", confirmation.OrderID, sessionID)

	event := orderPlacedEvent{
		OrderID:   confirmation.OrderID,
		SessionID: sessionID,
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
		PlacedAt:  confirmation.PlacedAt,
	}
	if err := s.publisher.Publish(ctx, nats.SubjectOrderPlaced, event); err != nil {
		s.log.Warnf("Failed to publish order.placed event for order %s: %v", confirmation.OrderID, err)
	}

	return confirmation, nil
}
