package repository

import (
	"context"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
)

// CartPersistence mirrors a session's cart across reloads. It is best-effort:
// the in-memory store stays authoritative for the session, a failing Save is
// logged and never rolls the store back.
type CartPersistence interface {
	// Load returns ErrNotFound when no cart has been saved for the session.
	Load(ctx context.Context, sessionID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
