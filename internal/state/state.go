package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"exhibit/storefront/internal/cart"
)

type redisCartState struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisCartState returns cart persistence backed by Redis, one key
// per cart identifier.
func NewRedisCartState(redisClient *redis.Client) cart.Persistence {
	return &redisCartState{
		redisClient: redisClient,
		keyPrefix:   "storefront:cart:",
	}
}

func (s *redisCartState) Load(ctx context.Context, cartID string) ([]byte, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+cartID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No snapshot saved yet
		}
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}
	return val, nil
}

func (s *redisCartState) Save(ctx context.Context, cartID string, snapshot []byte) error {
	err := s.redisClient.Set(ctx, s.keyPrefix+cartID, snapshot, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}
	return nil
}

func (s *redisCartState) Delete(ctx context.Context, cartID string) error {
	err := s.redisClient.Del(ctx, s.keyPrefix+cartID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}
