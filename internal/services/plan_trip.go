package services

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/metrics"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

// A trip endpoint given either as free text or as coordinates.
// Coordinates win when both are set.
type LocationInput struct {
	Text        string
	Coordinates *domain.Coordinates
}

type TripRequest struct {
	Origin      LocationInput
	Destination LocationInput
	Vehicle     string
	FuelPrice   float64
}

// PlanTrip resolves both endpoints, fetches candidate routes and estimates
// fuel for each of them.
//
// Errors wrap domain.ErrInvalidLocation, domain.ErrLocationNotFound or
// domain.ErrNoRoute when the request cannot be served; any other error
// comes from a collaborator.
func PlanTrip(
	ctx context.Context,
	req TripRequest,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	var origin, destination domain.Place

	// Resolve both endpoints concurrently; the first failure cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := resolveLocation(gctx, "origin", req.Origin, geocoder)
		if err != nil {
			return err
		}
		origin = p
		return nil
	})
	g.Go(func() error {
		p, err := resolveLocation(gctx, "destination", req.Destination, geocoder)
		if err != nil {
			return err
		}
		destination = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	routes, err := provider.GetRoutes(ctx, domain.RouteQuery{
		Origin:      origin.Coordinates,
		Destination: destination.Coordinates,
		Vehicle:     req.Vehicle,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: get routes: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("plan trip: %q -> %q: %w", origin.Label, destination.Label, domain.ErrNoRoute)
	}

	profile := domain.ResolveVehicle(req.Vehicle)
	estimate := EstimateFuel(routes, profile.Category, req.FuelPrice)
	metrics.FuelEstimates.WithLabelValues(profile.Category).Inc()

	return &domain.TripPlan{
		Origin:      origin,
		Destination: destination,
		Vehicle:     profile,
		FuelPrice:   req.FuelPrice,
		Estimate:    estimate,
	}, nil
}

func resolveLocation(
	ctx context.Context,
	role string,
	in LocationInput,
	geocoder ports.Geocoder,
) (domain.Place, error) {
	if in.Coordinates != nil {
		c := *in.Coordinates
		if !c.Valid() {
			return domain.Place{}, fmt.Errorf("%s %v: %w", role, c, domain.ErrInvalidLocation)
		}

		label := strings.TrimSpace(in.Text)
		if label == "" {
			label = fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
		}
		return domain.Place{Label: label, Coordinates: c}, nil
	}

	text := normalize(in.Text)
	if text == "" {
		return domain.Place{}, fmt.Errorf("%s is empty: %w", role, domain.ErrInvalidLocation)
	}

	places, err := geocoder.Search(ctx, text, 1)
	if err != nil {
		return domain.Place{}, fmt.Errorf("resolve %s: %w", role, err)
	}
	if len(places) == 0 {
		return domain.Place{}, fmt.Errorf("%s %q: %w", role, text, domain.ErrLocationNotFound)
	}

	return places[0], nil
}
