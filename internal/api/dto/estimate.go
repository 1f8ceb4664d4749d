package dto

// Candidate supplied by the caller. Geometry uses GeoJSON [lon, lat] positions.
type RouteCandidateRequest struct {
	DistanceMeters  float64     `json:"distanceMeters" validate:"gte=0,lte=40000000"`
	DurationSeconds float64     `json:"durationSeconds" validate:"gte=0,lte=31536000"`
	Geometry        [][]float64 `json:"geometry" validate:"omitempty,dive,len=2"`
}

type EstimateRequest struct {
	Routes    []RouteCandidateRequest `json:"routes" validate:"max=10,dive"`
	Vehicle   string                  `json:"vehicle" validate:"max=32"`
	FuelPrice *float64                `json:"fuelPrice" validate:"omitempty,gte=0,lte=10000000"`
}

type EstimateResponse struct {
	Vehicle         string          `json:"vehicle"`
	FuelPrice       float64         `json:"fuelPrice"`
	Routes          []RouteResponse `json:"routes"`
	BestFuelRouteID *int            `json:"bestFuelRouteId"`
}
