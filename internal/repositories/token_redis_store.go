package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenStore is a Redis implementation of TokenStore. Revoked tokens
// are stored under a key prefix with a TTL matching the token's remaining
// lifetime, so the denylist cleans itself up.
type RedisTokenStore struct {
	rdb *redis.Client
}

// NewRedisTokenStore creates a new instance of RedisTokenStore.
func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{
		rdb: rdb,
	}
}

func revokedKey(token string) string {
	return "revoked_token:" + token
}

// Revoke denylists a token for the given TTL.
func (s *RedisTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token is already expired; nothing to deny.
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token has been denylisted.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
