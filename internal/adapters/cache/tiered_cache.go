package cache

import (
	"context"
	"fmt"
	"fuel-route-service/internal/ports"

	"go.uber.org/zap"
)

// TieredCache consults its tiers in order, fastest first. A hit in a slower
// tier is copied into every faster tier. Backend errors on read are logged
// and treated as misses so a failing tier never fails a lookup.
type TieredCache[V any] struct {
	tiers []ports.Cache[V]
}

// NewTieredCache skips nil tiers.
func NewTieredCache[V any](tiers ...ports.Cache[V]) *TieredCache[V] {
	t := &TieredCache[V]{}
	for _, c := range tiers {
		if c != nil {
			t.tiers = append(t.tiers, c)
		}
	}
	return t
}

func (t *TieredCache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	for i, c := range t.tiers {
		v, ok, err := c.Get(ctx, key)
		if err != nil {
			zap.L().Warn("cache tier read failed", zap.Int("tier", i), zap.String("key", key), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		for j := 0; j < i; j++ {
			if err := t.tiers[j].Put(ctx, key, v); err != nil {
				zap.L().Warn("cache backfill failed", zap.Int("tier", j), zap.String("key", key), zap.Error(err))
			}
		}
		return v, true, nil
	}
	return zero, false, nil
}

// Put writes every tier and returns the first failure.
func (t *TieredCache[V]) Put(ctx context.Context, key string, value V) error {
	var first error
	for i, c := range t.tiers {
		if err := c.Put(ctx, key, value); err != nil && first == nil {
			first = fmt.Errorf("cache tier %d: %w", i, err)
		}
	}
	return first
}

// Tiers reports how many tiers are configured.
func (t *TieredCache[V]) Tiers() int { return len(t.tiers) }
