package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 10 * time.Minute

// IdempotencyGuard rejects repeated submissions of the same request key.
// Key format: idem:<scope>:<key>
type IdempotencyGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyGuard creates an IdempotencyGuard wrapping the given Redis client.
func NewIdempotencyGuard(client redis.Cmdable) *IdempotencyGuard {
	return &IdempotencyGuard{client: client, ttl: idempotencyTTL}
}

// Claim records scope/key and reports whether this was its first use inside
// the TTL window.
func (g *IdempotencyGuard) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(scope, key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim: %w", err)
	}
	return ok, nil
}

// Release deletes scope/key. Releasing an unclaimed key is not an error.
func (g *IdempotencyGuard) Release(ctx context.Context, scope, key string) error {
	if err := g.client.Del(ctx, g.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (g *IdempotencyGuard) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
