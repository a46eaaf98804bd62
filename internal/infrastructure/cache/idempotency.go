// Package cache holds the Redis-backed adapters.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyTTL = 24 * time.Hour

// IdempotencyStore reserves request keys in Redis so a retried checkout
// does not ring up the same sale twice. Keys expire after 24h.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore builds the adapter around an existing client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve claims the key atomically (SETNX). It returns false when the key
// was already claimed by an earlier request.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Release drops a reserved key so the terminal can retry after a failed
// commit. Should the DEL itself fail, the TTL still bounds the damage.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
