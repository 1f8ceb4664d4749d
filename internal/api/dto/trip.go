package dto

// A trip endpoint: free text, coordinates, or both (coordinates win and
// text becomes the label).
type LocationRequest struct {
	Text string   `json:"text" validate:"max=200"`
	Lat  *float64 `json:"lat" validate:"required_with=Lon"`
	Lon  *float64 `json:"lon" validate:"required_with=Lat"`
}

type RoutesRequest struct {
	Origin      LocationRequest `json:"origin"`
	Destination LocationRequest `json:"destination"`
	Vehicle     string          `json:"vehicle" validate:"max=32"`
	FuelPrice   *float64        `json:"fuelPrice" validate:"omitempty,gte=0,lte=10000000"`
	Order       string          `json:"order" validate:"omitempty,oneof=fastest eco"`
}

type TripResponse struct {
	Origin          PlaceResponse   `json:"origin"`
	Destination     PlaceResponse   `json:"destination"`
	Vehicle         string          `json:"vehicle"`
	FuelPrice       float64         `json:"fuelPrice"`
	Routes          []RouteResponse `json:"routes"`
	BestFuelRouteID *int            `json:"bestFuelRouteId"`
}
