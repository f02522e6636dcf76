// Package main runs the screening tools as an MCP server over stdio.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/screening-recommender/internal/config"
	"github.com/screening-recommender/internal/mcp"
	"github.com/screening-recommender/internal/setup"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr
	cfg := configManager.GetConfig()
	logger := config.NewLogger(cfg.Logging, os.Stderr)

	components, err := setup.Build(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Startup failed")
	}

	server := mcp.NewServer(logger, components.Analyzer, components.Recommender)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down MCP server...")
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		logger.WithError(err).Fatal("MCP server failed")
	}

	logger.Info("Screening MCP server stopped")
}
