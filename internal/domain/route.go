package domain

// A path between two points as returned by a routing service.
// Geometry is carried through estimation untouched.
type RouteCandidate struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []Coordinates
}

// Origin and destination of a routing request for one vehicle category.
type RouteQuery struct {
	Origin      Coordinates
	Destination Coordinates
	Vehicle     string
}

// A RouteCandidate enriched with fuel and display metrics.
//
// ID is the candidate's position in the routing service response. The
// service orders candidates fastest first, so IsFastest is true exactly
// for ID 0. Score equals FuelUsedLiters and is the ranking key.
type RankedRoute struct {
	ID               int
	Geometry         []Coordinates
	DistanceKm       float64
	DurationMin      int
	FuelUsedLiters   float64
	FuelCost         float64
	AvgSpeedKmh      int
	EfficiencyFactor float64
	IsFastest        bool
	Score            float64
}

// Result of estimating fuel for a set of candidates.
// BestFuelRouteID is nil when Routes is empty.
type FuelEstimate struct {
	Routes          []RankedRoute
	BestFuelRouteID *int
}

// Best returns the route with the lowest fuel volume.
func (e FuelEstimate) Best() (RankedRoute, bool) {
	if e.BestFuelRouteID == nil {
		return RankedRoute{}, false
	}
	for _, r := range e.Routes {
		if r.ID == *e.BestFuelRouteID {
			return r, true
		}
	}
	return RankedRoute{}, false
}

// Fastest returns the route flagged as fastest.
func (e FuelEstimate) Fastest() (RankedRoute, bool) {
	for _, r := range e.Routes {
		if r.IsFastest {
			return r, true
		}
	}
	return RankedRoute{}, false
}

// TripPlan is the fuel estimate for a trip between two resolved places.
type TripPlan struct {
	Origin      Place
	Destination Place
	Vehicle     VehicleProfile
	FuelPrice   float64
	Estimate    FuelEstimate
}
