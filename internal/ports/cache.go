package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a keyed lookup cache. A miss is (zero, false, nil); err is reserved
// for backend failures.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Put(ctx context.Context, key string, value V) error
}

type GeocodeCache = Cache[[]domain.Place]

type RouteCache = Cache[[]domain.RouteCandidate]
