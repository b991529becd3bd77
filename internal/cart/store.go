// Package cart owns the session shopping cart: a dependency-injected store
// that is the single source of truth for cart state, mirrored best-effort to a
// persistence adapter and observed through explicit listener registration.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/repository"
)

// Listener receives the new snapshot after every mutation of the store it is
// subscribed to.
type Listener func(entity.CartSnapshot)

// Store is the authoritative cart of one session. All operations are
// synchronous and run to completion under the store lock; listeners are
// notified after the lock is released so a listener can safely call back into
// the store.
//
// Persistence is best-effort: a failing Save is logged as a warning and never
// rolls back or fails the mutation. The in-memory state stays authoritative
// for the session.
type Store struct {
	mu        sync.Mutex
	cart      *entity.Cart
	persist   repository.CartPersistence
	ttl       time.Duration
	log       logger.Logger
	listeners map[int]Listener
	nextSub   int
}

func newStore(c *entity.Cart, persist repository.CartPersistence, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		cart:      c,
		persist:   persist,
		ttl:       ttl,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AddItem merges quantity into the line for product.ID, or appends a new line
// snapshotting the product's current price. Invalid input is rejected with a
// *entity.ValidationError and the cart is left untouched.
func (s *Store) AddItem(ctx context.Context, product *entity.Product, quantity int) (entity.CartSnapshot, error) {
	return s.mutate(ctx, func(c *entity.Cart) error {
		return c.AddItem(product, quantity)
	})
}

// UpdateQuantity sets the quantity of an existing line; zero or less removes
// the line, an unknown product is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, newQuantity int) (entity.CartSnapshot, error) {
	return s.mutate(ctx, func(c *entity.Cart) error {
		c.UpdateItemQuantity(productID, newQuantity)
		return nil
	})
}

// RemoveItem deletes the line for productID and reports whether a line was
// removed. An absent product is a no-op: the cart is unchanged, so nothing is
// persisted and no listener fires.
func (s *Store) RemoveItem(ctx context.Context, productID string) (entity.CartSnapshot, bool) {
	s.mu.Lock()
	if !s.cart.RemoveItem(productID) {
		snap := s.cart.Snapshot()
		s.mu.Unlock()
		return snap, false
	}

	snap := s.cart.Snapshot()
	if err := s.persist.Save(ctx, s.cart, s.ttl); err != nil {
		s.log.Warnf("Failed to persist cart for session %s: %v", s.cart.SessionID, err)
	}
	listeners := s.currentListeners()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap, true
}

// Clear empties the cart unconditionally and drops the persisted mirror.
func (s *Store) Clear(ctx context.Context) entity.CartSnapshot {
	s.mu.Lock()
	s.cart.Clear()
	snap := s.cart.Snapshot()
	if err := s.persist.Delete(ctx, s.cart.SessionID); err != nil {
		s.log.Warnf("Failed to delete persisted cart for session %s: %v", s.cart.SessionID, err)
	}
	listeners := s.currentListeners()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// Snapshot returns an immutable read of the current cart state.
func (s *Store) Snapshot() entity.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *Store) mutate(ctx context.Context, op func(*entity.Cart) error) (entity.CartSnapshot, error) {
	s.mu.Lock()
	if err := op(s.cart); err != nil {
		snap := s.cart.Snapshot()
		s.mu.Unlock()
		return snap, err
	}

	snap := s.cart.Snapshot()
	if err := s.persist.Save(ctx, s.cart, s.ttl); err != nil {
		s.log.Warnf("Failed to persist cart for session %s: %v", s.cart.SessionID, err)
	}
	listeners := s.currentListeners()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap, nil
}

func (s *Store) currentListeners() []Listener {
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return ls
}

func notify(listeners []Listener, snap entity.CartSnapshot) {
	for _, l := range listeners {
		l(snap)
	}
}
