package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	database "github.com/FACorreiaa/go-picnic-planner/app/db"
	appLogger "github.com/FACorreiaa/go-picnic-planner/app/logger"
	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/app/tracer"
	"github.com/FACorreiaa/go-picnic-planner/config"
	"github.com/FACorreiaa/go-picnic-planner/internal/container"
	"github.com/FACorreiaa/go-picnic-planner/internal/router"
)

// @title        Picnic Planner API
// @version      1.0
// @description  Cities, users and picnics with city validation against a weather service.
// @BasePath     /
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, &cfg, logger); err != nil {
		logger.Error("Application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metricsHandler, shutdownTelemetry, err := tracer.InitTracingAndMetrics("picnic-planner")
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.Any("error", err))
		}
	}()
	metrics.InitAppMetrics()

	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return err
	}

	// Run migrations *before* initializing the main pool
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return err
	}

	c, err := container.NewContainer(ctx, cfg, dbConfig.ConnectionURL, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if !database.WaitForDB(ctx, c.Pool, logger) {
		return errors.New("database not ready after waiting")
	}

	mainRouter := router.SetupRouter(&router.Config{
		CityHandler:    c.CityHandler,
		UserHandler:    c.UserHandler,
		PicnicHandler:  c.PicnicHandler,
		DB:             c.Pool,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      mainRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		return listen(srv)
	})
	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		return listen(metricsSrv)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		return errors.Join(srv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on %s: %w", srv.Addr, err)
	}
	return nil
}
