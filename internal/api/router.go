package api

import (
	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/platform/metrics"
	"fuel-route-service/internal/ports"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps carries what the HTTP layer needs from the composition root.
type Deps struct {
	Geocoder         ports.Geocoder
	Routes           ports.RouteProvider
	DefaultFuelPrice float64
	AllowedOrigins   []string
	MetricsEnabled   bool
	Logger           *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.L()
	}

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowed = http.HandlerFunc(handlers.MethodNotAllowed)

	geocodeHandler := &handlers.GeocodeHandler{Geocoder: d.Geocoder}
	routeHandler := &handlers.RouteHandler{
		Geocoder:         d.Geocoder,
		Provider:         d.Routes,
		DefaultFuelPrice: d.DefaultFuelPrice,
	}
	estimateHandler := &handlers.EstimateHandler{DefaultFuelPrice: d.DefaultFuelPrice}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)
	router.HandlerFunc(http.MethodGet, "/vehicles", handlers.Vehicles)
	router.HandlerFunc(http.MethodGet, "/geocode/search", geocodeHandler.Search)
	router.HandlerFunc(http.MethodPost, "/routes", routeHandler.Plan)
	router.HandlerFunc(http.MethodPost, "/estimate", estimateHandler.Estimate)

	known := map[string]bool{
		"/health":         true,
		"/vehicles":       true,
		"/geocode/search": true,
		"/routes":         true,
		"/estimate":       true,
	}

	if d.MetricsEnabled {
		router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		known["/metrics"] = true
	}

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	chain := alice.New(
		recoverMiddleware(log),
		requestIDMiddleware,
		loggingMiddleware(log),
		metricsMiddleware(known),
		corsHandler.Handler,
	)
	return chain.Then(router)
}
