package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded values under a key prefix.
type Redis[V any] struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func NewRedis[V any](rdb *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *Redis[V] {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl == 0 {
		ttl = DefaultExpiration
	}
	return &Redis[V]{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V

	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "redis get failed", "key", key, "error", err)
		return v, false
	}

	if err := json.Unmarshal(b, &v); err != nil {
		c.logger.WarnContext(ctx, "redis value undecodable", "key", key, "error", err)
		return v, false
	}
	return v, true
}

func (c *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = c.ttl
	}

	b, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "redis value unencodable", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, b, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis set failed", "key", key, "error", err)
	}
}

func (c *Redis[V]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, prefixed...).Err()
}
