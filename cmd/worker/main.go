package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinebook/internal/config"
	"cinebook/internal/database"
	"cinebook/internal/jobs"
	"cinebook/internal/logger"
	"cinebook/internal/messaging"
	"cinebook/internal/repository"
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

	// Client ids must be unique per NATS Streaming connection
	cfg.NATS.ClientID = cfg.NATS.ClientID + "-worker"

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}
	defer natsClient.Close()

	repos := repository.NewRepositories(db)

	worker := jobs.NewReleaseRetryWorker(natsClient, repos.Shows, 10*time.Second)
	if err := worker.Start(); err != nil {
		logger.Fatal("Failed to start reconciliation worker", "error", err)
	}
	defer worker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutdown signal received", "signal", sig.String())
	log.Info("Worker stopped")
}
