// Package redis opens the shared client used by the cache, the
// idempotency store, the rate limiter and the reservations pub/sub.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

type Config struct {
	Addr     string
	Password string
	DB       int

	// PoolSize of zero keeps the driver default (10 per CPU).
	PoolSize     int
	MinIdleConns int
}

// New connects and verifies the server is reachable before handing the
// client out; a seatwise instance without Redis cannot serve traffic.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	const op = "redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   "seatwise",
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, nil
}
