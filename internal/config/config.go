package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port string

	ORSAPIKey            string
	ORSBaseURL           string
	ORSRequestsPerMinute int
	ORSAlternatives      int

	GeocodeCountry   string
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
	RouteCacheSize   int
	RouteCacheTTL    time.Duration

	DatabaseURL string
	RedisURL    string

	DefaultFuelPrice   float64
	CORSAllowedOrigins []string
	LogLevel           string
	MetricsEnabled     bool
}

// Load reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	cfg, err := FromEnv()
	if err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

// FromEnv builds a Config from environment variables and validates it.
func FromEnv() (*Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := &Config{
		Port:               Get("PORT", "8080"),
		ORSAPIKey:          strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL:         strings.TrimRight(Get("ORS_BASE_URL", "https://api.openrouteservice.org"), "/"),
		GeocodeCountry:     strings.TrimSpace(os.Getenv("GEOCODE_COUNTRY")),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		CORSAllowedOrigins: GetList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:           Get("LOG_LEVEL", "info"),
	}

	var err error
	cfg.ORSRequestsPerMinute, err = GetInt("ORS_REQUESTS_PER_MINUTE", 40)
	collect(err)
	cfg.ORSAlternatives, err = GetInt("ORS_ALTERNATIVES", 3)
	collect(err)
	cfg.GeocodeCacheSize, err = GetInt("GEOCODE_CACHE_SIZE", 1024)
	collect(err)
	cfg.GeocodeCacheTTL, err = GetDuration("GEOCODE_CACHE_TTL", 24*time.Hour)
	collect(err)
	cfg.RouteCacheSize, err = GetInt("ROUTE_CACHE_SIZE", 256)
	collect(err)
	cfg.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 15*time.Minute)
	collect(err)
	cfg.DefaultFuelPrice, err = GetFloat("DEFAULT_FUEL_PRICE", 0)
	collect(err)
	cfg.MetricsEnabled, err = GetBool("METRICS_ENABLED", true)
	collect(err)

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	switch {
	case c.ORSAPIKey == "":
		return errors.New("config: ORS_API_KEY is required")
	case c.ORSRequestsPerMinute <= 0:
		return fmt.Errorf("config: ORS_REQUESTS_PER_MINUTE must be positive, got %d", c.ORSRequestsPerMinute)
	case c.ORSAlternatives < 1 || c.ORSAlternatives > 3:
		return fmt.Errorf("config: ORS_ALTERNATIVES must be between 1 and 3, got %d", c.ORSAlternatives)
	case c.GeocodeCacheSize <= 0:
		return fmt.Errorf("config: GEOCODE_CACHE_SIZE must be positive, got %d", c.GeocodeCacheSize)
	case c.RouteCacheSize <= 0:
		return fmt.Errorf("config: ROUTE_CACHE_SIZE must be positive, got %d", c.RouteCacheSize)
	case c.GeocodeCacheTTL <= 0 || c.RouteCacheTTL <= 0:
		return errors.New("config: cache TTLs must be positive")
	case c.DefaultFuelPrice < 0:
		return fmt.Errorf("config: DEFAULT_FUEL_PRICE must not be negative, got %v", c.DefaultFuelPrice)
	}
	return nil
}

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse float %q: %w", key, v, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: parse bool %q: %w", key, v, err)
	}
	return b, nil
}

// GetList splits a comma separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
