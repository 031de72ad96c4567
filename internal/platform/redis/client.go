package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"kycverify/internal/platform/config"
)

// Client is the shared Redis connection pool for rate-limit counters.
type Client struct {
	*redis.Client
	addr string
}

// New builds the pool. It returns nil, nil when no URL is configured so the
// limiter runs on in-process counters. An unreachable server is logged but
// not fatal: the limiter's circuit breaker covers the outage and the
// readiness probe reports it.
func New(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	c := &Client{Client: redis.NewClient(opts), addr: opts.Addr}
	if err := c.Health(ctx); err != nil {
		logger.WarnContext(ctx, "redis unreachable at startup, rate limiting starts degraded",
			"addr", c.addr,
			"error", err,
		)
		return c, nil
	}
	logger.InfoContext(ctx, "redis connected", "addr", c.addr, "pool_size", opts.PoolSize)
	return c, nil
}

// Health pings the server; it backs the "redis" readiness check.
func (c *Client) Health(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", c.addr, err)
	}
	return nil
}
