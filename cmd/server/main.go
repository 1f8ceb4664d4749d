package main

import (
	"context"
	"database/sql"
	"errors"
	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/logger"
	"fuel-route-service/internal/platform/metrics"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (ORS, cache tiers) behind ports and starts the HTTP server.
func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	if !envLoaded {
		lg.Info("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	if cfg.MetricsEnabled {
		metrics.RegisterDefault()
	}

	var (
		geocodeTiers = []ports.GeocodeCache{
			cache.NewMemoryCache[[]domain.Place]("geocode", cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL),
		}
		routeTiers = []ports.RouteCache{
			cache.NewMemoryCache[[]domain.RouteCandidate]("route", cfg.RouteCacheSize, cfg.RouteCacheTTL),
		}
	)

	// Shared tiers are optional; without them the service runs on memory caches only.
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		geocodeTiers = append(geocodeTiers, cache.NewRedisCache[[]domain.Place](rdb, "geocode:", cfg.GeocodeCacheTTL))
		routeTiers = append(routeTiers, cache.NewRedisCache[[]domain.RouteCandidate](rdb, "route:", cfg.RouteCacheTTL))
		lg.Info("redis cache tier enabled")
	}

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		geocodeSQL, routeSQL, err := sqlTiers(ctx, sqlDB, cfg)
		if err != nil {
			return err
		}
		geocodeTiers = append(geocodeTiers, geocodeSQL)
		routeTiers = append(routeTiers, routeSQL)
		lg.Info("postgres cache tier enabled")
	}

	client, err := ors.NewClient(ors.Options{
		APIKey:            cfg.ORSAPIKey,
		BaseURL:           cfg.ORSBaseURL,
		RequestsPerMinute: cfg.ORSRequestsPerMinute,
		Alternatives:      cfg.ORSAlternatives,
		Country:           cfg.GeocodeCountry,
		RouteCache:        cache.NewTieredCache(routeTiers...),
	})
	if err != nil {
		return err
	}

	geocoder := services.NewCachedGeocoder(client, cache.NewTieredCache(geocodeTiers...))

	router := api.NewRouter(api.Deps{
		Geocoder:         geocoder,
		Routes:           client,
		DefaultFuelPrice: cfg.DefaultFuelPrice,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		MetricsEnabled:   cfg.MetricsEnabled,
		Logger:           lg,
	})

	// Timeouts are tuned for cold-cache routing (external API latency and retries).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Info("server listening", zap.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		lg.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func sqlTiers(
	ctx context.Context,
	sqlDB *sql.DB,
	cfg *config.Config,
) (ports.GeocodeCache, ports.RouteCache, error) {
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		return nil, nil, err
	}

	geocodeSQL, err := cache.NewSQLCache[[]domain.Place](sqlDB, cache.GeocodeTable, cfg.GeocodeCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	routeSQL, err := cache.NewSQLCache[[]domain.RouteCandidate](sqlDB, cache.RouteTable, cfg.RouteCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return geocodeSQL, routeSQL, nil
}
