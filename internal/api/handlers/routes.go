package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"net/http"
)

type RouteHandler struct {
	Geocoder         ports.Geocoder
	Provider         ports.RouteProvider
	DefaultFuelPrice float64
}

// Plan resolves a trip, fetches alternatives and ranks them by fuel use.
// With order "eco" the most fuel-efficient route is listed first.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RoutesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fuelPrice := h.DefaultFuelPrice
	if req.FuelPrice != nil {
		fuelPrice = *req.FuelPrice
	}

	plan, err := services.PlanTrip(r.Context(), services.TripRequest{
		Origin:      toLocationInput(req.Origin),
		Destination: toLocationInput(req.Destination),
		Vehicle:     req.Vehicle,
		FuelPrice:   fuelPrice,
	}, h.Geocoder, h.Provider)
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	if !finiteEstimate(plan.Estimate) {
		writeOutOfRange(w, r, "plan trip")
		return
	}

	routes := plan.Estimate.Routes
	if req.Order == "eco" && plan.Estimate.BestFuelRouteID != nil {
		routes = services.SortEcoFirst(routes, *plan.Estimate.BestFuelRouteID)
	}

	res := dto.TripResponse{
		Origin:          dto.NewPlaceResponse(plan.Origin),
		Destination:     dto.NewPlaceResponse(plan.Destination),
		Vehicle:         plan.Vehicle.Category,
		FuelPrice:       plan.FuelPrice,
		Routes:          dto.NewRouteResponses(routes),
		BestFuelRouteID: plan.Estimate.BestFuelRouteID,
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toLocationInput(l dto.LocationRequest) services.LocationInput {
	in := services.LocationInput{Text: l.Text}
	if l.Lat != nil && l.Lon != nil {
		in.Coordinates = &domain.Coordinates{Lon: *l.Lon, Lat: *l.Lat}
	}
	return in
}
