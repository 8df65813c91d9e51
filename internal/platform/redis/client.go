// Package redis owns the optional Redis connection used by the plan cache.
// The service runs fine without it: an empty REDIS_URL yields a nil client
// and callers degrade to pass-through behavior.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sessiongate/internal/platform/config"
	"sessiongate/pkg/platform/sentinel"
)

// Client embeds the go-redis client so callers get the full command surface
// plus the readiness check used by /healthz.
type Client struct {
	*redis.Client
}

// New dials Redis and proves the connection with a ping before handing it
// out. Returns (nil, nil) when no URL is configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %v: %w", err, sentinel.ErrUnavailable)
	}
	return &Client{Client: client}, nil
}

// Health reports whether Redis currently answers, for readiness probes.
func (c *Client) Health(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %v: %w", err, sentinel.ErrUnavailable)
	}
	return nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}
