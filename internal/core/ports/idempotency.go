package ports

import "context"

// IdempotencyGuard claims a request key once per TTL window. Claim returns
// false when scope/key was already claimed. Release frees a claimed key so
// a failed request can be retried with it.
type IdempotencyGuard interface {
	Claim(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}
