package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"openhouse/internal/api"
	"openhouse/internal/auth"
	"openhouse/internal/config"
	"openhouse/internal/monitoring"
	"openhouse/internal/ocr"
	"openhouse/internal/scraper"
	"openhouse/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize Storage Layer
	pgStore, err := storage.NewPostgresStore(cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pgStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		cancel()
		logger.Fatal("failed to ensure database schema", zap.Error(err))
	}
	cancel()

	redisStore := storage.NewRedisStore(cfg.RedisAddr)

	// Initialize Services
	metrics := monitoring.NewMetrics()
	authService := auth.NewService(cfg.BcryptCost)
	ocrClient := ocr.NewClient(cfg, logger)
	if !ocrClient.Enabled() {
		logger.Warn("ocr is disabled: no OCR_API_KEY configured")
	}
	propertyScraper := scraper.New(cfg, logger)

	// Initialize API Server
	server := api.NewServer(cfg, pgStore, redisStore, ocrClient, propertyScraper, authService, metrics, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
