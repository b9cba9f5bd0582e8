// Package cache connects the redis instance that can back portal sessions.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopstack-asia/spi-sdb-app/internal/config"
)

const clientName = "sdb-portal"

// ConnectSessionRedis dials redis and fails fast when it is not reachable.
func ConnectSessionRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session redis: unreachable at %s (db %d): %w", cfg.Addr, cfg.DB, err)
	}
	return client, nil
}

// Health reports on a redis client for the health endpoint.
type Health struct {
	Client *redis.Client
}

func (h Health) Ping(ctx context.Context) error {
	return h.Client.Ping(ctx).Err()
}
