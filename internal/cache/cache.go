// Package cache stores read-mostly lookups either in process or in Redis.
package cache

import (
	"context"
	"time"
)

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cache is a typed key/value cache. Get reports false on miss or on any
// backend error; callers then load from the source of truth.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string) error
}
