package cache

import (
	"context"
	"fuel-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetPut(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[[]domain.Place]("geocode", 8, time.Hour)

	_, ok, err := c.Get(ctx, "hanoi")
	require.NoError(t, err)
	assert.False(t, ok)

	want := []domain.Place{{Label: "Hanoi, Vietnam", Coordinates: domain.Coordinates{Lon: 105.85, Lat: 21.03}}}
	require.NoError(t, c.Put(ctx, "hanoi", want))

	got, ok, err := c.Get(ctx, "hanoi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[int]("test", 2, time.Hour)

	require.NoError(t, c.Put(ctx, "a", 1))
	require.NoError(t, c.Put(ctx, "b", 2))

	// Touch a so b becomes the eviction candidate.
	_, ok, _ := c.Get(ctx, "a")
	require.True(t, ok)

	require.NoError(t, c.Put(ctx, "c", 3))

	assert.Equal(t, 2, c.Len())
	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok, "b should have been evicted")
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[int]("test", 4, 20*time.Millisecond)

	require.NoError(t, c.Put(ctx, "k", 1))
	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
