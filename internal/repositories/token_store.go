package repositories

import (
	"context"
	"time"
)

// TokenStore defines the interface for the revoked-token denylist backing
// logout. A token stays denylisted until it would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
