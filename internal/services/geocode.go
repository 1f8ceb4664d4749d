package services

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedGeocoder serves repeated queries from a cache and collapses
// concurrent lookups of the same query into one upstream call.
type CachedGeocoder struct {
	next    ports.Geocoder
	cache   ports.GeocodeCache
	group   singleflight.Group
	timeout time.Duration
}

// Bounds a shared upstream lookup, which outlives any single caller.
const defaultSharedLookupTimeout = 15 * time.Second

var _ ports.Geocoder = (*CachedGeocoder)(nil)

// NewCachedGeocoder wraps next. A nil cache disables caching but keeps
// the duplicate-call suppression.
func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, timeout: defaultSharedLookupTimeout}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *CachedGeocoder) Search(ctx context.Context, text string, limit int) ([]domain.Place, error) {
	norm := normalize(text)
	if norm == "" {
		return []domain.Place{}, nil
	}

	key := strings.ToLower(norm) + "|" + strconv.Itoa(limit)

	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	// The shared lookup is detached from the first caller so that caller
	// cancelling does not fail the others waiting on the same key.
	ch := g.group.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
		defer cancel()

		places, err := g.next.Search(lookupCtx, norm, limit)
		if err != nil {
			return nil, err
		}

		if g.cache != nil {
			if err := g.cache.Put(lookupCtx, key, places); err != nil {
				zap.L().Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return places, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("geocode search %q: %w", norm, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("geocode search %q: %w", norm, res.Err)
		}
		return res.Val.([]domain.Place), nil
	}
}
