package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// RevocationList records tokens invalidated before their natural expiry and
// answers membership checks for the authorization gate.
type RevocationList interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

// redisRevocationList keeps revoked tokens in Redis keyed by the raw token,
// with a TTL equal to the token's remaining lifetime so entries vanish once
// the token would have expired anyway.
type redisRevocationList struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationList builds a Redis-backed revocation list.
func NewRedisRevocationList(client *redis.Client) RevocationList {
	return &redisRevocationList{client: client, now: time.Now}
}

func (l *redisRevocationList) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(l.now())
	if ttl <= 0 {
		// Already past natural expiry; verification rejects it regardless.
		return nil
	}
	return l.client.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err()
}

func (l *redisRevocationList) Contains(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
