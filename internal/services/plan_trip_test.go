package services

import (
	"context"
	"errors"
	"fuel-route-service/internal/adapters/mock"
	"fuel-route-service/internal/domain"
	"testing"
)

var (
	munich = domain.Place{Label: "Munich, Germany", Coordinates: domain.Coordinates{Lon: 11.582, Lat: 48.135}}
	island = domain.Place{Label: "Helgoland, Germany", Coordinates: domain.Coordinates{Lon: 7.885, Lat: 54.181}}

	tripRoutes = []domain.RouteCandidate{
		{DistanceMeters: 100000, DurationSeconds: 3600},
		{DistanceMeters: 90000, DurationSeconds: 4000},
	}
)

func newTripFixtures() (*mock.Geocoder, *mock.RouteProvider) {
	geocoder := &mock.Geocoder{Places: map[string][]domain.Place{
		"Berlin": {berlin},
		"Munich": {munich},
		"Helgoland": {island},
	}}
	provider := mock.NewRouteProvider([]mock.RoutePair{
		{From: berlin.Coordinates, To: munich.Coordinates, Routes: tripRoutes},
		{From: berlin.Coordinates, To: island.Coordinates},
	})
	return geocoder, provider
}

func TestPlanTripFromText(t *testing.T) {
	geocoder, provider := newTripFixtures()

	plan, err := PlanTrip(context.Background(), TripRequest{
		Origin:      LocationInput{Text: "Berlin"},
		Destination: LocationInput{Text: " Munich "},
		Vehicle:     "truck",
		FuelPrice:   2,
	}, geocoder, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Origin != berlin || plan.Destination != munich {
		t.Fatalf("unexpected endpoints: %+v -> %+v", plan.Origin, plan.Destination)
	}
	if plan.Vehicle.Category != "truck" {
		t.Fatalf("expected truck profile, got %q", plan.Vehicle.Category)
	}
	if len(plan.Estimate.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(plan.Estimate.Routes))
	}
	if plan.Estimate.BestFuelRouteID == nil {
		t.Fatalf("expected a best route")
	}

	want := EstimateFuel(tripRoutes, "truck", 2)
	if *plan.Estimate.BestFuelRouteID != *want.BestFuelRouteID {
		t.Fatalf("expected best %d, got %d", *want.BestFuelRouteID, *plan.Estimate.BestFuelRouteID)
	}

	queries := provider.Queries()
	if len(queries) != 1 || queries[0].Vehicle != "truck" {
		t.Fatalf("unexpected provider queries: %+v", queries)
	}
}

func TestPlanTripCoordinatesSkipGeocoder(t *testing.T) {
	geocoder, provider := newTripFixtures()

	from, to := berlin.Coordinates, munich.Coordinates
	plan, err := PlanTrip(context.Background(), TripRequest{
		Origin:      LocationInput{Coordinates: &from},
		Destination: LocationInput{Text: "Home", Coordinates: &to},
		Vehicle:     "unknown",
		FuelPrice:   1.5,
	}, geocoder, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if geocoder.Calls() != 0 {
		t.Fatalf("expected no geocoder calls, got %d", geocoder.Calls())
	}
	if plan.Origin.Label != "52.520000,13.405000" {
		t.Fatalf("unexpected origin label %q", plan.Origin.Label)
	}
	if plan.Destination.Label != "Home" {
		t.Fatalf("unexpected destination label %q", plan.Destination.Label)
	}
	if plan.Vehicle.Category != domain.DefaultVehicle {
		t.Fatalf("expected fallback to %q, got %q", domain.DefaultVehicle, plan.Vehicle.Category)
	}
}

func TestPlanTripErrors(t *testing.T) {
	bad := domain.Coordinates{Lon: 200, Lat: 10}
	upstream := errors.New("upstream down")

	tests := []struct {
		name    string
		req     TripRequest
		mutate  func(*mock.Geocoder, *mock.RouteProvider)
		wantErr error
	}{
		{
			name:    "empty origin",
			req:     TripRequest{Origin: LocationInput{Text: "  "}, Destination: LocationInput{Text: "Munich"}},
			wantErr: domain.ErrInvalidLocation,
		},
		{
			name:    "invalid coordinates",
			req:     TripRequest{Origin: LocationInput{Coordinates: &bad}, Destination: LocationInput{Text: "Munich"}},
			wantErr: domain.ErrInvalidLocation,
		},
		{
			name:    "unknown place",
			req:     TripRequest{Origin: LocationInput{Text: "Atlantis"}, Destination: LocationInput{Text: "Munich"}},
			wantErr: domain.ErrLocationNotFound,
		},
		{
			name:    "no routes",
			req:     TripRequest{Origin: LocationInput{Text: "Berlin"}, Destination: LocationInput{Text: "Helgoland"}},
			wantErr: domain.ErrNoRoute,
		},
		{
			name: "provider failure",
			req:  TripRequest{Origin: LocationInput{Text: "Berlin"}, Destination: LocationInput{Text: "Munich"}},
			mutate: func(_ *mock.Geocoder, p *mock.RouteProvider) {
				p.Err = upstream
			},
			wantErr: upstream,
		},
		{
			name: "geocoder failure",
			req:  TripRequest{Origin: LocationInput{Text: "Berlin"}, Destination: LocationInput{Text: "Munich"}},
			mutate: func(g *mock.Geocoder, _ *mock.RouteProvider) {
				g.Err = upstream
			},
			wantErr: upstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder, provider := newTripFixtures()
			if tt.mutate != nil {
				tt.mutate(geocoder, provider)
			}

			plan, err := PlanTrip(context.Background(), tt.req, geocoder, provider)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if plan != nil {
				t.Fatalf("expected nil plan, got %+v", plan)
			}
		})
	}
}
