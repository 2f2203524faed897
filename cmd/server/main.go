// Package main is the entry point for the trading journal service.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jstrader/tradejournal/internal/config"
	"github.com/jstrader/tradejournal/internal/di"
	"github.com/jstrader/tradejournal/internal/scheduler"
	"github.com/jstrader/tradejournal/internal/server"
	"github.com/jstrader/tradejournal/pkg/logger"
)

func main() {
	// Load configuration first to get the log level.
	cfg, err := config.Load()
	if err != nil {
		// Use a fallback logger so the configuration error is still logged.
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Pretty:   cfg.DevMode,
		FilePath: cfg.LogFile,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting trade journal service")

	// Wire all dependencies: databases, repositories, clients, services,
	// background jobs.
	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	// Register background jobs. Backups are optional; the cache sweep always
	// runs.
	sched := scheduler.New(log)
	if jobs.Backup != nil {
		if err := sched.AddJob(cfg.Backup.Schedule, jobs.Backup); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	}
	if err := sched.AddJob("@hourly", jobs.CacheCleanup); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for shutdown signal, then drain in order: HTTP first so no new
	// writes arrive, then the scheduler, then the databases (deferred).
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	sched.Stop()

	log.Info().Msg("Shutdown complete")
}
