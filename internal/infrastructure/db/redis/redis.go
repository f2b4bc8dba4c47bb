package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config holds the settings for the Redis connection backing the token
// denylist.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a Redis client and verifies connectivity with a ping.
// Timeout <= 0 falls back to pingTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
