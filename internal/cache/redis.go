// Package cache is the Redis layer backing the identity cache and the
// login rate limiter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options carries the Redis connection settings. Pool sizing comes from
// configuration so deployments can tune it per instance.
type Options struct {
	URL          string
	PoolSize     int
	MinIdleConns int
}

// Cache wraps a Redis client shared by the identity cache, the rate
// limiter, and the audit stream.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
// Zero pool settings fall back to the driver defaults.
func New(ctx context.Context, opts Options) (*Cache, error) {
	opt, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse Redis URL: %w", err)
	}

	if opts.PoolSize > 0 {
		opt.PoolSize = opts.PoolSize
	}
	if opts.MinIdleConns > 0 {
		opt.MinIdleConns = opts.MinIdleConns
	}
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping reports Redis connectivity, used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client and its pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying Redis client for the audit stream
// worker, which needs consumer-group commands directly.
func (c *Cache) Client() *redis.Client {
	return c.client
}
