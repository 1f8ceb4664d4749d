package mock

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"sync"
)

type RoutePair struct {
	From, To domain.Coordinates
	Routes   []domain.RouteCandidate
}

// RouteProvider answers from a fixed table of origin/destination pairs and
// records every query it receives.
type RouteProvider struct {
	mu      sync.Mutex
	m       map[string][]domain.RouteCandidate
	queries []domain.RouteQuery
	Err     error
}

func NewRouteProvider(pairs []RoutePair) *RouteProvider {
	m := make(map[string][]domain.RouteCandidate, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = p.Routes
	}
	return &RouteProvider{m: m}
}

func (p *RouteProvider) GetRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.RouteCandidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queries = append(p.queries, q)
	if p.Err != nil {
		return nil, p.Err
	}

	routes, ok := p.m[pairKey(q.Origin, q.Destination)]
	if !ok {
		return nil, fmt.Errorf("missing pair %v -> %v", q.Origin, q.Destination)
	}
	return routes, nil
}

// Queries returns a copy of the queries received so far.
func (p *RouteProvider) Queries() []domain.RouteQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.RouteQuery(nil), p.queries...)
}

func pairKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%f,%f|%f,%f", from.Lon, from.Lat, to.Lon, to.Lat)
}
