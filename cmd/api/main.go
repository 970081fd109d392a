package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cinebook/internal/api"
	"cinebook/internal/cache"
	"cinebook/internal/config"
	"cinebook/internal/database"
	"cinebook/internal/logger"
	"cinebook/internal/messaging"
	"cinebook/internal/repository"
	"cinebook/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}
	defer natsClient.Close()

	// The service degrades gracefully without Redis: no availability cache,
	// no idempotency replay.
	cacheClient, err := cache.New(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, caching and idempotency disabled", "error", err)
	} else {
		defer cacheClient.Close()
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, cacheClient)
	server := api.NewServer(cfg, services)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("HTTP server failed", "error", err)
		}
	case sig := <-quit:
		log.Info("Shutdown signal received", "signal", sig.String())
		if err := server.Shutdown(context.Background()); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
		}
	}

	log.Info("Server stopped")
}
