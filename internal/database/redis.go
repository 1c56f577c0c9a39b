package database

import (
	"context"
	"time"

	"github.com/bracken1022/prompt-museum/config"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis returns a pinged client, or nil when no Redis host is
// configured. Callers treat a nil client as "caching disabled".
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
