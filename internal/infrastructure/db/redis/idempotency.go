package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied idempotency keys to the slug the
// first create produced.
// Key format: idem:<scope>:<actor_id>:<key>
type IdempotencyStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Lookup returns the stored slug, or "" when the key is unknown or expired.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, actorID, key string) (string, error) {
	slug, err := s.client.Get(ctx, s.key(scope, actorID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return slug, nil
}

// Remember stores slug under the key unless one is already present, so the
// first writer wins when two retries race.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, actorID, key, slug string) error {
	if err := s.client.SetNX(ctx, s.key(scope, actorID, key), slug, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, actorID, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", scope, actorID, key)
}
