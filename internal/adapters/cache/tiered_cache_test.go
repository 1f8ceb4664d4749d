package cache

import (
	"context"
	"errors"
	"fuel-route-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{}

func (failingCache) Get(context.Context, string) (int, bool, error) {
	return 0, false, errors.New("backend down")
}

func (failingCache) Put(context.Context, string, int) error {
	return errors.New("backend down")
}

func TestTieredCacheBackfillsFasterTiers(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)

	mem := NewMemoryCache[int]("mem", 4, time.Hour)
	shared := NewRedisCache[int](rdb, "t:", time.Hour)
	tiered := NewTieredCache[int](mem, shared)

	require.NoError(t, shared.Put(ctx, "k", 42))

	v, ok, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok, _ = mem.Get(ctx, "k")
	assert.True(t, ok, "memory tier should be backfilled")
	assert.Equal(t, 42, v)
}

func TestTieredCachePutWritesAllTiers(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)

	mem := NewMemoryCache[int]("mem", 4, time.Hour)
	shared := NewRedisCache[int](rdb, "t:", time.Hour)
	tiered := NewTieredCache[int](mem, nil, shared)
	assert.Equal(t, 2, tiered.Tiers())

	require.NoError(t, tiered.Put(ctx, "k", 1))

	_, ok, _ := mem.Get(ctx, "k")
	assert.True(t, ok)
	_, ok, _ = shared.Get(ctx, "k")
	assert.True(t, ok)
}

func TestTieredCacheSkipsFailingTier(t *testing.T) {
	ctx := context.Background()

	mem := NewMemoryCache[int]("mem", 4, time.Hour)
	var broken ports.Cache[int] = failingCache{}
	tiered := NewTieredCache(broken, ports.Cache[int](mem))

	require.NoError(t, mem.Put(ctx, "k", 5))

	v, ok, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	err = tiered.Put(ctx, "k", 6)
	assert.ErrorContains(t, err, "tier 0")

	v, _, _ = mem.Get(ctx, "k")
	assert.Equal(t, 6, v, "healthy tiers are still written")
}
