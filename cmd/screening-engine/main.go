package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/candidex/screening-engine/internal/api"
	"github.com/candidex/screening-engine/internal/assessment"
	"github.com/candidex/screening-engine/internal/cache"
	"github.com/candidex/screening-engine/internal/catalog"
	"github.com/candidex/screening-engine/internal/config"
	"github.com/candidex/screening-engine/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting screening-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations")
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	var repo storage.Repository
	repo, err = storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Optional Redis cache for company reads
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password)
		if err != nil {
			slog.Warn("redis unavailable, running without company cache", "error", err)
		} else {
			repo = cache.NewCompanyCache(repo, redisClient, cfg.Redis.CacheTTL)
			slog.Info("company cache enabled", "address", cfg.Redis.Address, "ttl", cfg.Redis.CacheTTL)
		}
	}

	// Load the question catalog
	cat := catalog.Default()
	if cfg.Catalog.File != "" {
		cat, err = catalog.LoadFromFile(cfg.Catalog.File)
		if err != nil {
			slog.Error("failed to load question catalog", "file", cfg.Catalog.File, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("question catalog ready", "questions", cat.Len())

	// Initialize the assessment lifecycle manager
	manager := assessment.NewManager(repo, cat, assessment.Config{
		CatalogQuestions: cfg.Assessment.CatalogQuestions,
		CompanyQuestions: cfg.Assessment.CompanyQuestions,
		ExpiryWindow:     cfg.Assessment.ExpiryWindow,
	})

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.CORS, manager, repo)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("screening-engine stopped")
}
