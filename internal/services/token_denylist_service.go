package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// TokenDenylist remembers revoked tokens until they would have expired.
// Without Redis nothing can be revoked and every token is accepted until
// expiry.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func (d *TokenDenylist) Enabled() bool {
	return d != nil && d.rdb != nil
}

func (d *TokenDenylist) AddToDenylist(ctx context.Context, tokenString string, expiration time.Duration) error {
	if !d.Enabled() || expiration <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+tokenString, 1, expiration).Err()
}

func (d *TokenDenylist) IsDenylisted(ctx context.Context, tokenString string) (bool, error) {
	if !d.Enabled() {
		return false, nil
	}
	val, err := d.rdb.Get(ctx, denylistPrefix+tokenString).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
