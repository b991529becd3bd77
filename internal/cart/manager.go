package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/repository"
)

var ErrEmptySessionID = errors.New("session ID cannot be empty")

// Manager hands out the one Store per session. The first touch of a session
// restores its cart from the persistence adapter; a fresh cart is started when
// nothing was persisted, or when loading fails (degraded session, warned).
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	persist repository.CartPersistence
	ttl     time.Duration
	log     logger.Logger
}

func NewManager(persist repository.CartPersistence, ttl time.Duration, log logger.Logger) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		persist: persist,
		ttl:     ttl,
		log:     log,
	}
}

func (m *Manager) ForSession(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store, nil
	}

	c, err := m.persist.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			m.log.Warnf("Failed to restore cart for session %s, starting empty: %v", sessionID, err)
		}
		c = entity.NewCart(sessionID)
	}

	store := newStore(c, m.persist, m.ttl, m.log)
	m.stores[sessionID] = store
	return store, nil
}

// Drop clears a session's cart and forgets its store. Used on logout.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	delete(m.stores, sessionID)
	m.mu.Unlock()

	if ok {
		store.Clear(ctx)
		return
	}
	if err := m.persist.Delete(ctx, sessionID); err != nil {
		m.log.Warnf("Failed to delete persisted cart for session %s: %v", sessionID, err)
	}
}
