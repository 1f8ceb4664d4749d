package ors

import (
	"errors"
	"fuel-route-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey            string
	BaseURL           string
	RequestsPerMinute int
	// Alternatives is the number of routes requested per directions call (1..3).
	Alternatives int
	// Country restricts geocoding to an ISO 3166 country code when set.
	Country    string
	RouteCache ports.RouteCache
	HTTPClient *http.Client
}

// Client implements RouteProvider and Geocoder using OpenRouteService.
//
// It coordinates:
//   - Outbound rate limiting shared by all endpoints
//   - Retry with exponential backoff on transient failures
//   - Route caching keyed by profile and coordinates
//
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	limiter      *rate.Limiter
	alternatives int
	country      string
	routeCache   ports.RouteCache
	backoff      time.Duration
}

var (
	_ ports.RouteProvider = (*Client)(nil)
	_ ports.Geocoder      = (*Client)(nil)
)

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 40
	}

	alternatives := opts.Alternatives
	if alternatives < 1 {
		alternatives = 1
	}
	if alternatives > 3 {
		alternatives = 3
	}

	session := opts.HTTPClient
	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		session:      session,
		apiKey:       opts.APIKey,
		baseURL:      baseURL,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		alternatives: alternatives,
		country:      strings.TrimSpace(opts.Country),
		routeCache:   opts.RouteCache,
		backoff:      200 * time.Millisecond,
	}, nil
}

// profileFor maps a vehicle category to an ORS routing profile.
func profileFor(vehicle string) string {
	if vehicle == "truck" {
		return "driving-hgv"
	}
	return "driving-car"
}
