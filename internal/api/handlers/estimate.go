package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/services"
	"net/http"
)

// EstimateHandler runs the fuel engine over caller-supplied candidates.
type EstimateHandler struct {
	DefaultFuelPrice float64
}

func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req dto.EstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fuelPrice := h.DefaultFuelPrice
	if req.FuelPrice != nil {
		fuelPrice = *req.FuelPrice
	}

	candidates := make([]domain.RouteCandidate, 0, len(req.Routes))
	for _, rc := range req.Routes {
		geometry := make([]domain.Coordinates, 0, len(rc.Geometry))
		for _, pos := range rc.Geometry {
			geometry = append(geometry, domain.Coordinates{Lon: pos[0], Lat: pos[1]})
		}
		candidates = append(candidates, domain.RouteCandidate{
			DistanceMeters:  rc.DistanceMeters,
			DurationSeconds: rc.DurationSeconds,
			Geometry:        geometry,
		})
	}

	profile := domain.ResolveVehicle(req.Vehicle)
	estimate := services.EstimateFuel(candidates, profile.Category, fuelPrice)
	if !finiteEstimate(estimate) {
		writeOutOfRange(w, r, "estimate")
		return
	}

	res := dto.EstimateResponse{
		Vehicle:         profile.Category,
		FuelPrice:       fuelPrice,
		Routes:          dto.NewRouteResponses(estimate.Routes),
		BestFuelRouteID: estimate.BestFuelRouteID,
	}

	writeJSON(w, r, http.StatusOK, res)
}
