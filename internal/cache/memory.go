package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type InMemory[V any] struct {
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewInMemory[V any](defaultExpiration, cleanupInterval time.Duration, logger *slog.Logger) *InMemory[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemory[V]{
		cache:  gocache.New(defaultExpiration, cleanupInterval),
		logger: logger,
	}
}

func (c *InMemory[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		c.logger.ErrorContext(ctx, "wrong type assertion when getting value", "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value; a zero ttl (gocache.DefaultExpiration) uses the cache default.
func (c *InMemory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

func (c *InMemory[V]) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.cache.Delete(key)
	}
	return nil
}
