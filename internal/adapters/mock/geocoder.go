package mock

import (
	"context"
	"fuel-route-service/internal/domain"
	"sync/atomic"
	"time"
)

// Geocoder answers from a fixed table keyed by exact query text.
// Unknown text yields no places.
type Geocoder struct {
	Places map[string][]domain.Place
	Err    error
	// Delay holds each call open, to exercise concurrent callers.
	Delay time.Duration
	calls atomic.Int64
}

func (g *Geocoder) Search(ctx context.Context, text string, limit int) ([]domain.Place, error) {
	g.calls.Add(1)

	if g.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.Delay):
		}
	}

	if g.Err != nil {
		return nil, g.Err
	}

	places := g.Places[text]
	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}
	return places, nil
}

// Calls reports how many searches reached the geocoder.
func (g *Geocoder) Calls() int64 { return g.calls.Load() }
