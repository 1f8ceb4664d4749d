package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/ports"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultGeocodeLimit = 5
	maxGeocodeLimit     = 10
)

// GeocodeHandler exposes free-text place search.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	text := strings.TrimSpace(q.Get("text"))
	if text == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	limit := defaultGeocodeLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxGeocodeLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 10")
			return
		}
		limit = n
	}

	places, err := h.Geocoder.Search(r.Context(), text, limit)
	if err != nil {
		writeServiceError(w, r, "geocode search", err)
		return
	}

	res := dto.GeocodeResponse{Results: make([]dto.PlaceResponse, 0, len(places))}
	for _, p := range places {
		res.Results = append(res.Results, dto.NewPlaceResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
