package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"net/http"
)

// Vehicles lists the registered vehicle profiles.
func Vehicles(w http.ResponseWriter, r *http.Request) {
	categories := domain.VehicleCategories()

	res := dto.ListVehiclesResponse{
		Vehicles: make([]dto.VehicleResponse, 0, len(categories)),
	}
	for _, c := range categories {
		p := domain.ResolveVehicle(c)
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			Category:        p.Category,
			BaseConsumption: p.BaseConsumption,
			OptimalSpeed:    p.OptimalSpeed,
			DragFactor:      p.DragFactor,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
