package dto

import "fuel-route-service/internal/domain"

// GeoJSON LineString with [lon, lat] positions.
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type RouteResponse struct {
	ID               int        `json:"id"`
	Geometry         LineString `json:"geometry"`
	DistanceKm       float64    `json:"distanceKm"`
	DurationMin      int        `json:"durationMin"`
	FuelUsedLiters   float64    `json:"fuelUsedLiters"`
	FuelCost         float64    `json:"fuelCost"`
	AvgSpeed         int        `json:"avgSpeed"`
	EfficiencyFactor float64    `json:"efficiencyFactor"`
	IsFastest        bool       `json:"isFastest"`
	Score            float64    `json:"score"`
}

func NewLineString(coords []domain.Coordinates) LineString {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.CoordsToList())
	}
	return LineString{Type: "LineString", Coordinates: out}
}

func NewRouteResponses(routes []domain.RankedRoute) []RouteResponse {
	res := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		res = append(res, RouteResponse{
			ID:               r.ID,
			Geometry:         NewLineString(r.Geometry),
			DistanceKm:       r.DistanceKm,
			DurationMin:      r.DurationMin,
			FuelUsedLiters:   r.FuelUsedLiters,
			FuelCost:         r.FuelCost,
			AvgSpeed:         r.AvgSpeedKmh,
			EfficiencyFactor: r.EfficiencyFactor,
			IsFastest:        r.IsFastest,
			Score:            r.Score,
		})
	}
	return res
}
