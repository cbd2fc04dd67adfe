// Command server runs the dispatch-core HTTP boundary: the §6.A Pricing
// API and §6.B Quote lifecycle API on the customer-facing port, and
// health/metrics/batch-expiry on a separate internal ops port, mirroring
// the teacher's split between a public gateway and internal ops surface.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aurigo/dispatch-core/internal/api"
	"github.com/aurigo/dispatch-core/internal/config"
	"github.com/aurigo/dispatch-core/internal/obs"
	"github.com/aurigo/dispatch-core/internal/pricing"
	"github.com/aurigo/dispatch-core/internal/repo"
)

func main() {
	logger := obs.New(obs.Config{
		ServiceName: "dispatch-core",
		Environment: getEnv("DISPATCH_ENV", "development"),
		Level:       getEnv("LOG_LEVEL", "info"),
	})
	defer logger.Sync()

	cfg, err := config.LoadFromFile(getEnv("CONFIG_PATH", ""))
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg = cfg.WithEnvOverrides()

	db, err := repo.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repo.AutoMigrate(db); err != nil {
		logger.Fatal("failed to auto-migrate", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, rate limiting disabled")
			redisClient = nil
		}
		cancel()
	}

	registry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(registry)

	engine := pricing.New(cfg)

	store := api.NewRepoStore(
		repo.NewContactRepository(db),
		repo.NewZoneRepository(db),
		repo.NewSettingsRepository(db),
		repo.NewVehicleCategoryRepository(db),
	)
	orderStore := repo.NewOrderStore(db)
	quoteRepo := repo.NewQuoteRepository(db)

	pricingHandler := api.NewPricingHandler(engine, store, metrics, logger)
	quoteHandler := api.NewQuoteHandler(quoteRepo, orderStore, metrics, logger)
	batchHandler := api.NewBatchHandler(quoteRepo, orderStore, logger)

	limiter := api.NewRateLimiter(redisClient, 120, time.Minute)

	publicServer := &http.Server{
		Addr:         ":" + portString(cfg.HTTPPort),
		Handler:      api.NewRouter(pricingHandler, quoteHandler, logger, limiter),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	opsServer := &http.Server{
		Addr:    ":" + portString(cfg.OpsPort),
		Handler: api.NewOpsRouter(batchHandler),
	}

	go func() {
		logger.Info("starting public API server")
		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("public API server failed", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("starting ops server")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ops server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = publicServer.Shutdown(ctx)
	_ = opsServer.Shutdown(ctx)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func portString(p int) string {
	if p == 0 {
		return "8080"
	}
	return strconv.Itoa(p)
}
