package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/repository"
)

// cartRepository is the degraded-session fallback used when Redis is not
// configured: carts survive for the process lifetime only. TTLs are honored
// lazily on Load.
type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]storedCart
}

type storedCart struct {
	data      entity.Cart
	expiresAt time.Time
}

func NewCartRepository() repository.CartPersistence {
	return &cartRepository{carts: make(map[string]storedCart)}
}

func (r *cartRepository) Load(_ context.Context, sessionID string) (*entity.Cart, error) {
	r.mu.RLock()
	stored, ok := r.carts[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, repository.ErrNotFound
	}
	if !stored.expiresAt.IsZero() && time.Now().After(stored.expiresAt) {
		r.mu.Lock()
		delete(r.carts, sessionID)
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}

	cart := stored.data
	cart.Items = make([]entity.CartLineItem, len(stored.data.Items))
	copy(cart.Items, stored.data.Items)
	return &cart, nil
}

func (r *cartRepository) Save(_ context.Context, cart *entity.Cart, ttl time.Duration) error {
	if cart == nil || cart.SessionID == "" {
		return errors.New("cannot save nil cart or cart with empty session ID")
	}

	stored := storedCart{data: *cart}
	stored.data.Items = make([]entity.CartLineItem, len(cart.Items))
	copy(stored.data.Items, cart.Items)
	if ttl > 0 {
		stored.expiresAt = time.Now().Add(ttl)
	}

	r.mu.Lock()
	r.carts[cart.SessionID] = stored
	r.mu.Unlock()
	return nil
}

func (r *cartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}
