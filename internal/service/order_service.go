package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
)

// ErrOrderAccessDenied hides another customer's order from a non-admin caller.
var ErrOrderAccessDenied = errors.New("order does not belong to this user")

// OrdersBackend is the slice of the backend client order history needs.
type OrdersBackend interface {
	ListOrders(ctx context.Context, userID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
}

// OrderService serves the customer's order-history pages. Orders live behind
// the backend contract; nothing is stored locally.
type OrderService interface {
	ListUserOrders(ctx context.Context, userID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error)
}

type orderService struct {
	backend OrdersBackend
	log     logger.Logger
}

func NewOrderService(b OrdersBackend, log logger.Logger) OrderService {
	return &orderService{backend: b, log: log}
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	orders, err := s.backend.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if !isAdmin && order.UserID != userID {
		s.log.Warnf("User %s attempted to read order %s owned by %s", userID, orderID, order.UserID)
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}
