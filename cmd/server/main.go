package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"visit-route-service/internal/adapters/cache"
	"visit-route-service/internal/adapters/geocode"
	"visit-route-service/internal/adapters/optimizer"
	"visit-route-service/internal/adapters/store"
	"visit-route-service/internal/api"
	"visit-route-service/internal/config"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/platform/logging"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, upstream HTTP services)
// behind ports and starts the HTTP server.
func main() {
	dotenvErr := godotenv.Load()

	logger, err := logging.Init(config.Get("APP_ENV", "development"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if dotenvErr != nil {
		logger.Info("no .env file found, using environment variables")
	}

	port := config.Get("PORT", "8080")

	geocoderURL := os.Getenv("GEOCODER_URL")
	geocoderKey := os.Getenv("GEOCODER_API_KEY")
	optimizerURL := os.Getenv("OPTIMIZER_URL")
	optimizerKey := os.Getenv("OPTIMIZER_API_KEY")
	if strings.TrimSpace(geocoderURL) == "" || strings.TrimSpace(geocoderKey) == "" {
		logger.Fatal("GEOCODER_URL and GEOCODER_API_KEY are required")
	}
	if strings.TrimSpace(optimizerURL) == "" || strings.TrimSpace(optimizerKey) == "" {
		logger.Fatal("OPTIMIZER_URL and OPTIMIZER_API_KEY are required")
	}

	// Geocode results persist across restarts when a database is
	// configured; without one every lookup goes upstream.
	var geocodeCache geocode.Cache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		defer pg.Close()
		geocodeCache = cache.NewSQLGeocodeCache(pg)
		logger.Info("geocode cache enabled")
	} else {
		logger.Warn("DATABASE_URL not set, geocode cache disabled")
	}

	geocoder, err := geocode.NewHTTPGeocoder(geocoderURL, geocoderKey, geocodeCache, logger)
	if err != nil {
		logger.Fatal("geocoder setup failed", zap.Error(err))
	}

	tourOptimizer, err := optimizer.NewHTTPTourOptimizer(optimizerURL, optimizerKey)
	if err != nil {
		logger.Fatal("optimizer setup failed", zap.Error(err))
	}

	roster := store.NewMemoryStore()

	// Selection state and the last schedule live in Redis when available,
	// otherwise in process memory alongside the rosters.
	var sessions ports.SessionStore = roster
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		redisDB, _ := strconv.Atoi(config.Get("REDIS_DB", "0"))
		rs := store.NewRedisSessionStore(addr, os.Getenv("REDIS_PASSWORD"), redisDB, 24*time.Hour)
		if err := rs.Ping(context.Background()); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		sessions = rs
		logger.Info("redis session store enabled", zap.String("addr", addr))
	}

	opts := services.DefaultRequestOptions()
	if ratio, err := strconv.ParseFloat(config.Get("SOFT_CAP_RATIO", "0"), 64); err == nil && ratio > 0 {
		opts.SoftCapRatio = ratio
		opts.OverageCostMultiplier, _ = strconv.ParseFloat(config.Get("OVERAGE_COST_MULTIPLIER", "2"), 64)
	}

	router := api.NewRouter(roster, sessions, geocoder, tourOptimizer, opts)

	// Timeouts are tuned for cold-cache optimization runs (external API latency).
	logger.Info("server listening", zap.String("addr", ":"+port))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}
