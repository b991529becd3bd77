package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/repository"
)

type productCache struct {
	mu       sync.RWMutex
	products map[string]cachedProduct
}

type cachedProduct struct {
	data      entity.Product
	expiresAt time.Time
}

func NewProductCache() repository.ProductCache {
	return &productCache{products: make(map[string]cachedProduct)}
}

func (c *productCache) Get(_ context.Context, productID string) (*entity.Product, error) {
	c.mu.RLock()
	cached, ok := c.products[productID]
	c.mu.RUnlock()

	if !ok {
		return nil, repository.ErrNotFound
	}
	if !cached.expiresAt.IsZero() && time.Now().After(cached.expiresAt) {
		c.mu.Lock()
		delete(c.products, productID)
		c.mu.Unlock()
		return nil, repository.ErrNotFound
	}

	product := cached.data
	return &product, nil
}

func (c *productCache) Set(_ context.Context, product *entity.Product, ttl time.Duration) error {
	if product == nil || product.ID == "" {
		return errors.New("cannot cache nil product or product with empty ID")
	}

	cached := cachedProduct{data: *product}
	if ttl > 0 {
		cached.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.products[product.ID] = cached
	c.mu.Unlock()
	return nil
}

func (c *productCache) Delete(_ context.Context, productID string) error {
	c.mu.Lock()
	delete(c.products, productID)
	c.mu.Unlock()
	return nil
}
