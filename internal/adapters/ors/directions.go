package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"net/http"

	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

type alternativeRoutes struct {
	TargetCount  int     `json:"target_count"`
	WeightFactor float64 `json:"weight_factor"`
	ShareFactor  float64 `json:"share_factor"`
}

type directionsRequest struct {
	Coordinates       [][]float64        `json:"coordinates"`
	AlternativeRoutes *alternativeRoutes `json:"alternative_routes,omitempty"`
	Instructions      bool               `json:"instructions"`
}

type directionsResponse struct {
	Routes []struct {
		// ORS omits distance and duration for zero-length routes.
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// GetRoutes returns up to the configured number of candidate routes,
// in ORS order (recommended/fastest first).
func (c *Client) GetRoutes(
	ctx context.Context,
	q domain.RouteQuery,
) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "ors.directions")(&err)

	profile := profileFor(q.Vehicle)
	key := routeCacheKey(profile, q, c.alternatives)

	// Check the route cache before issuing external API calls.
	if c.routeCache != nil {
		cached, ok, err := c.routeCache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("route cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	routes, err := c.fetchDirections(ctx, profile, q, c.alternatives)

	// ORS rejects alternative routes beyond its distance limit with a 400;
	// fall back to a single route in that case.
	var se *StatusError
	if err != nil && c.alternatives > 1 && errors.As(err, &se) && se.Code == http.StatusBadRequest {
		zap.L().Info("alternative routes rejected, retrying with a single route",
			zap.String("req_id", obs.RequestID(ctx)), zap.String("profile", profile))
		routes, err = c.fetchDirections(ctx, profile, q, 1)
	}
	if err != nil {
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("directions %s: %w: %v", profile, domain.ErrNoRoute, err)
		}
		return nil, fmt.Errorf("directions %s: %w", profile, err)
	}

	if c.routeCache != nil && len(routes) > 0 {
		if err := c.routeCache.Put(ctx, key, routes); err != nil {
			zap.L().Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return routes, nil
}

func (c *Client) fetchDirections(
	ctx context.Context,
	profile string,
	q domain.RouteQuery,
	alternatives int,
) ([]domain.RouteCandidate, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{
			q.Origin.CoordsToList(),
			q.Destination.CoordsToList(),
		},
	}
	if alternatives > 1 {
		bodyObj.AlternativeRoutes = &alternativeRoutes{
			TargetCount:  alternatives,
			WeightFactor: 1.4,
			ShareFactor:  0.6,
		}
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, "directions", func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	out := make([]domain.RouteCandidate, 0, len(dr.Routes))
	for i, r := range dr.Routes {
		geometry, err := decodeGeometry(r.Geometry)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}

		out = append(out, domain.RouteCandidate{
			DistanceMeters:  r.Summary.Distance,
			DurationSeconds: r.Summary.Duration,
			Geometry:        geometry,
		})
	}

	return out, nil
}

// decodeGeometry expands an encoded polyline (precision 5, lat/lon order)
// into lon/lat coordinates.
func decodeGeometry(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return []domain.Coordinates{}, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return out, nil
}

func routeCacheKey(profile string, q domain.RouteQuery, alternatives int) string {
	return fmt.Sprintf(
		"%s|%.6f,%.6f|%.6f,%.6f|%d",
		profile,
		q.Origin.Lon, q.Origin.Lat,
		q.Destination.Lon, q.Destination.Lat,
		alternatives,
	)
}
