package main

import (
	"context"
	"flag"
	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/logger"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	initSchema := flag.Bool("init", false, "create the cache schema")
	purge := flag.Bool("purge", false, "delete expired cache rows")
	flag.Parse()

	if !*initSchema && !*purge {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	lg, err := logger.New(config.Get("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		lg.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		lg.Fatal("open database", zap.Error(err))
	}
	defer sqlDB.Close()

	if *initSchema {
		lg.Info("initializing cache schema")
		if err := cache.InitSchema(ctx, sqlDB); err != nil {
			lg.Fatal("schema initialization failed", zap.Error(err))
		}
		lg.Info("schema ready")
	}

	if *purge {
		geocodeTTL, err := config.GetDuration("GEOCODE_CACHE_TTL", 24*time.Hour)
		if err != nil {
			lg.Fatal("invalid config", zap.Error(err))
		}
		routeTTL, err := config.GetDuration("ROUTE_CACHE_TTL", 15*time.Minute)
		if err != nil {
			lg.Fatal("invalid config", zap.Error(err))
		}

		geocodes, err := cache.NewSQLCache[[]domain.Place](sqlDB, cache.GeocodeTable, geocodeTTL)
		if err != nil {
			lg.Fatal("geocode cache", zap.Error(err))
		}
		routes, err := cache.NewSQLCache[[]domain.RouteCandidate](sqlDB, cache.RouteTable, routeTTL)
		if err != nil {
			lg.Fatal("route cache", zap.Error(err))
		}

		for table, p := range map[string]interface {
			Purge(context.Context) (int64, error)
		}{cache.GeocodeTable: geocodes, cache.RouteTable: routes} {
			n, err := p.Purge(ctx)
			if err != nil {
				lg.Fatal("purge failed", zap.String("table", table), zap.Error(err))
			}
			lg.Info("purged expired rows", zap.String("table", table), zap.Int64("rows", n))
		}
	}
}
