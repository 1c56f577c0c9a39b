package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bracken1022/prompt-museum/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// jsonCache is a read-through helper over Redis. A nil client turns every
// call into a miss, so services work unchanged without Redis. Cache failures
// are logged and never fail the request.
type jsonCache struct {
	rdb *redis.Client
}

func (c jsonCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c jsonCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c jsonCache) del(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
