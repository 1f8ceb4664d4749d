package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OperationDuration records timed internal operations (see obs.Time).
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Internal operation duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "result"},
	)

	// UpstreamRequests counts outbound OpenRouteService attempts.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_requests_total", Help: "Outbound routing/geocoding requests by endpoint and status."},
		[]string{"endpoint", "status"},
	)

	// CacheLookups counts cache hits and misses per cache tier.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cache_lookups_total", Help: "Cache lookups by cache and result."},
		[]string{"cache", "result"},
	)

	// FuelEstimates counts estimated trips by vehicle category.
	FuelEstimates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fuel_estimates_total", Help: "Fuel estimates computed by vehicle category."},
		[]string{"vehicle"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(UpstreamRequests)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(FuelEstimates)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
