package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"io"
	"math"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// Upper bound on request bodies; estimate payloads carry geometry.
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	// Encode before writing the header so a failure can still become a 500.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zap.L().Error("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v and validates it.
// On failure it writes a 400 (413 for oversized bodies) and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	var tooLarge *http.MaxBytesError

	if err := dec.Decode(v); err != nil {
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := validateStruct(v); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps service and adapter errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		statusErr *ors.StatusError
		netErr    net.Error
	)

	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, domain.ErrInvalidLocation):
		status, msg = http.StatusBadRequest, "origin and destination need text or valid lat/lon"
	case errors.Is(err, domain.ErrLocationNotFound):
		status, msg = http.StatusUnprocessableEntity, "location not found"
	case errors.Is(err, domain.ErrNoRoute):
		status, msg = http.StatusNotFound, "no route found"
	case errors.As(err, &statusErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusBadGateway, "routing service unavailable"
	}

	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", fields...)
	} else {
		zap.L().Info("request rejected", fields...)
	}

	writeError(w, r, status, msg)
}

// NotFound answers unmatched paths with the JSON error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known paths hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// finiteEstimate reports whether every number in e can be encoded as JSON.
// Extreme but valid inputs can overflow the fuel model to ±Inf.
func finiteEstimate(e domain.FuelEstimate) bool {
	for _, r := range e.Routes {
		for _, v := range []float64{r.DistanceKm, r.FuelUsedLiters, r.FuelCost, r.EfficiencyFactor, r.Score} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

func writeOutOfRange(w http.ResponseWriter, r *http.Request, op string) {
	zap.L().Info("request rejected",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("op", op),
		zap.Int("status", http.StatusUnprocessableEntity),
		zap.String("reason", "estimate not finite"),
	)
	writeError(w, r, http.StatusUnprocessableEntity, "estimate out of range")
}
