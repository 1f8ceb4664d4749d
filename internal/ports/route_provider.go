package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for retrieving candidate driving routes between two points.
type RouteProvider interface {
	// Return candidates in the provider's native order, fastest first.
	GetRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.RouteCandidate, error)
}
