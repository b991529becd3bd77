package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/repository"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "storefront:cart:"

// cartRepository persists one JSON document per session cart. The document is
// the full entity.Cart, so a Load after Save round-trips losslessly.
type cartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) repository.CartPersistence {
	return &cartRepository{client: client}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (r *cartRepository) Load(ctx context.Context, sessionID string) (*entity.Cart, error) {
	val, err := r.client.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading cart for session %s: %v", repository.ErrConnectionFailed, sessionID, err)
	}

	var cart entity.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart data for session %s: %w", sessionID, err)
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart, ttl time.Duration) error {
	if cart == nil || cart.SessionID == "" {
		return errors.New("cannot save nil cart or cart with empty session ID")
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", cart.SessionID, err)
	}

	if err := r.client.Set(ctx, cartKey(cart.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: saving cart for session %s: %v", repository.ErrConnectionFailed, cart.SessionID, err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: deleting cart for session %s: %v", repository.ErrConnectionFailed, sessionID, err)
	}
	return nil
}
