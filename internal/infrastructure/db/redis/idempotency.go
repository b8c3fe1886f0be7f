package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers which order an Idempotency-Key produced.
// Key format: idem:order:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the order id stored under key, or "" when the key is unseen
// or expired.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, nil
}

// Remember records orderID under key for ttl. An existing entry is kept, so
// the first order created under a key stays the one replayed.
func (s *IdempotencyStore) Remember(ctx context.Context, key, orderID string, ttl time.Duration) error {
	if err := s.client.SetNX(ctx, s.key(key), orderID, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:order:" + k
}
