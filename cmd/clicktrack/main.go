package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"clicktrack/internal/cache"
	"clicktrack/internal/config"
	"clicktrack/internal/database"
	deliveryhttp "clicktrack/internal/delivery/http"
	"clicktrack/internal/enrichment"
	"clicktrack/internal/metrics"
	"clicktrack/internal/repository/sqlite"
	"clicktrack/internal/retention"
	"clicktrack/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	var logger *zap.Logger
	if cfg.AppEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.Fatal("failed to create data directory", zap.Error(err))
	}

	db, err := database.OpenDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("event store initialized", zap.String("path", cfg.DatabasePath))

	// Wire dependencies
	m := metrics.New()
	repo := sqlite.NewClickRepository(db)
	service := usecase.NewAnalyticsService(repo, enrichment.NewDeviceDetector(), enrichment.NewSourceClassifier())
	queries := cache.New(service, cfg.CacheSize, cfg.CacheTTL)
	verifier := deliveryhttp.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	handler := deliveryhttp.NewHandler(service, queries, m, logger)
	router := deliveryhttp.NewRouter(handler, verifier, m)

	purger := retention.NewPurger(service, m, logger, cfg.RetentionDays, cfg.RetentionSchedule, queries.Purge)
	if err := purger.Start(); err != nil {
		logger.Fatal("failed to start retention job", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("clicktrack service starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("clicktrack service shutting down")
	purger.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("clicktrack service stopped")
}
