package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func exerciseCache(t *testing.T, c Cache[[]item]) {
	t.Helper()
	ctx := context.Background()

	_, ok := c.Get(ctx, "conferences")
	assert.False(t, ok)

	want := []item{{ID: "C1", Title: "Session 1"}, {ID: "C2", Title: "Session 2"}}
	c.Set(ctx, "conferences", want, time.Minute)

	got, ok := c.Get(ctx, "conferences")
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "conferences"))
	_, ok = c.Get(ctx, "conferences")
	assert.False(t, ok)
}

func TestInMemory(t *testing.T) {
	exerciseCache(t, NewInMemory[[]item](DefaultExpiration, DefaultCleanupInterval, nil))
}

func TestInMemory_Expiry(t *testing.T) {
	c := NewInMemory[string](DefaultExpiration, DefaultCleanupInterval, nil)
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	rdb, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	exerciseCache(t, NewRedis[[]item](rdb, "test:"+t.Name()+":", time.Minute, nil))
}
