package cache

import "fuel-route-service/internal/platform/metrics"

func recordLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.CacheLookups.WithLabelValues(cache, result).Inc()
}
