package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/screening-recommender/internal/api"
	"github.com/screening-recommender/internal/config"
	"github.com/screening-recommender/internal/setup"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := config.NewLogger(cfg.Logging, os.Stdout)
	logger.WithField("config_file", configManager.ConfigFileUsed()).Info("Configuration loaded")

	// Model and phrase drift aborts here, before the listener opens
	components, err := setup.Build(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Startup failed")
	}

	server := api.NewServer(configManager, logger, api.Dependencies{
		Analyzer:    components.Analyzer,
		Recommender: components.Recommender,
		Model:       components.Recommender,
		Breakers:    components.Sheets,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	logger.Infof("Starting screening recommender on %s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}
