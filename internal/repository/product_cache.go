package repository

import (
	"context"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
)

// ProductCache caches catalog entries fetched from the platform backend so
// repeated add-to-cart checks do not hit the backend every time.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}
