package dto

import "fuel-route-service/internal/domain"

type PlaceResponse struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type GeocodeResponse struct {
	Results []PlaceResponse `json:"results"`
}

func NewPlaceResponse(p domain.Place) PlaceResponse {
	return PlaceResponse{Label: p.Label, Lat: p.Coordinates.Lat, Lon: p.Coordinates.Lon}
}
