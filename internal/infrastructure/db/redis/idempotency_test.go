package redis

import (
	"context"
	"errors"
	"testing"
)

func TestIdempotencyGuard_ClaimOnce(t *testing.T) {
	fake := newFakeRedis()
	g := NewIdempotencyGuard(fake)
	ctx := context.Background()

	first, err := g.Claim(ctx, "alice", "k1")
	if err != nil || !first {
		t.Fatalf("first claim = %v, %v", first, err)
	}
	if ttl := fake.ttls["idem:alice:k1"]; ttl != idempotencyTTL {
		t.Fatalf("unexpected ttl %s", ttl)
	}
	if again, err := g.Claim(ctx, "alice", "k1"); err != nil || again {
		t.Fatalf("second claim = %v, %v", again, err)
	}
	if other, err := g.Claim(ctx, "bob", "k1"); err != nil || !other {
		t.Fatalf("keys must be scoped per user: %v, %v", other, err)
	}
}

func TestIdempotencyGuard_ReleaseAllowsRetry(t *testing.T) {
	g := NewIdempotencyGuard(newFakeRedis())
	ctx := context.Background()

	if _, err := g.Claim(ctx, "alice", "k1"); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := g.Release(ctx, "alice", "k1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if again, err := g.Claim(ctx, "alice", "k1"); err != nil || !again {
		t.Fatalf("claim after release = %v, %v", again, err)
	}
	if err := g.Release(ctx, "alice", "unknown"); err != nil {
		t.Fatalf("releasing an unclaimed key must succeed: %v", err)
	}
}

func TestIdempotencyGuard_StoreError(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errRedisDown
	g := NewIdempotencyGuard(fake)

	if _, err := g.Claim(context.Background(), "alice", "k1"); !errors.Is(err, errRedisDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if err := g.Release(context.Background(), "alice", "k1"); !errors.Is(err, errRedisDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
