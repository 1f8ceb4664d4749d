package services

import (
	"cmp"
	"fuel-route-service/internal/domain"
	"math"
	"slices"
)

// EstimateFuel annotates each route candidate with fuel volume, cost and
// display metrics for the given vehicle category, and selects the route
// with the lowest fuel volume.
//
// Routes are returned in input order. Candidate 0 is flagged as fastest
// because routing services answer fastest first; durations are not compared.
// The fuel-best route is the first candidate with the minimal score.
// Inputs are not validated: negative distances or durations yield
// meaningless but finite numbers.
func EstimateFuel(routes []domain.RouteCandidate, category string, fuelPrice float64) domain.FuelEstimate {
	profile := domain.ResolveVehicle(category)

	ranked := make([]domain.RankedRoute, 0, len(routes))
	for i, r := range routes {
		ranked = append(ranked, estimateRoute(i, r, profile, fuelPrice))
	}

	if len(ranked) == 0 {
		return domain.FuelEstimate{Routes: ranked}
	}

	// Rank a copy so the response keeps the routing service's order.
	byScore := slices.Clone(ranked)
	slices.SortStableFunc(byScore, func(a, b domain.RankedRoute) int {
		return cmp.Compare(a.Score, b.Score)
	})
	best := byScore[0].ID

	return domain.FuelEstimate{Routes: ranked, BestFuelRouteID: &best}
}

func estimateRoute(id int, r domain.RouteCandidate, p domain.VehicleProfile, fuelPrice float64) domain.RankedRoute {
	distanceKm := r.DistanceMeters / 1000
	durationHr := r.DurationSeconds / 3600

	// Zero-duration routes report an average speed of 0.
	avgSpeed := 0.0
	if durationHr > 0 {
		avgSpeed = distanceKm / durationHr
	}

	eff := EfficiencyFactor(avgSpeed, p.OptimalSpeed)
	fuel := (distanceKm / 100) * p.BaseConsumption * eff
	fuelUsed := round(fuel, 2)

	return domain.RankedRoute{
		ID:               id,
		Geometry:         r.Geometry,
		DistanceKm:       round(distanceKm, 1),
		DurationMin:      roundInt(r.DurationSeconds / 60),
		FuelUsedLiters:   fuelUsed,
		FuelCost:         math.Round(fuel * fuelPrice),
		AvgSpeedKmh:      roundInt(avgSpeed),
		EfficiencyFactor: round(eff, 2),
		IsFastest:        id == 0,
		Score:            fuelUsed,
	}
}

// EfficiencyFactor is the consumption multiplier at avgSpeed for a vehicle
// whose consumption is minimal at optimalSpeed. Below the optimum every
// km/h of deficit costs 1%; above it every km/h of excess costs 1/3%.
// Both branches meet at 1.0 when avgSpeed equals optimalSpeed.
func EfficiencyFactor(avgSpeed, optimalSpeed float64) float64 {
	if avgSpeed < optimalSpeed {
		return 1.0 + (optimalSpeed-avgSpeed)/20*0.2
	}
	return 1.0 + (avgSpeed-optimalSpeed)/30*0.1
}

// SortEcoFirst returns a copy of routes with the route identified by bestID
// moved to the front. The remaining routes keep their relative order.
func SortEcoFirst(routes []domain.RankedRoute, bestID int) []domain.RankedRoute {
	out := slices.Clone(routes)
	slices.SortStableFunc(out, func(a, b domain.RankedRoute) int {
		switch {
		case a.ID == bestID && b.ID != bestID:
			return -1
		case b.ID == bestID && a.ID != bestID:
			return 1
		}
		return 0
	})
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// roundInt rounds to the nearest int, saturating at the int range.
// NaN maps to 0.
func roundInt(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
