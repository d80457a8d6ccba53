// Package session tracks revoked bearer tokens in redis. A token stays
// revoked until it would have expired anyway.
package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "blacklist:"

type Blacklist struct {
	redis *redis.Client
}

func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{redis: rdb}
}

// Revoke ставит токен в черный список до истечения
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.redis.Set(ctx, keyPrefix+token, 1, ttl).Err()
}

// IsRevoked reports whether token was revoked. A redis failure is returned
// as an error and callers treat the token as unusable.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := b.redis.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
