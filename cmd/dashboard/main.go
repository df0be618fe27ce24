package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/copia-dashboard/internal/config"
	"github.com/copia-dashboard/internal/dashboard"
	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/copia-dashboard/internal/logger"
	"github.com/copia-dashboard/internal/suspend"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig("dashboard")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the ledger API client
	client, err := ledgerapi.New(ledgerapi.Config{
		BaseURL: cfg.LedgerAPI.BaseURL,
		Token:   cfg.LedgerAPI.Token,
		Timeout: cfg.LedgerAPI.Timeout,
	})
	if err != nil {
		log.Error("Failed to initialize ledger API client", "error", err)
		os.Exit(1)
	}

	// Initialize the suspension cache backing the read services
	cache, err := suspend.NewCache(cfg.WorkerPool.Size)
	if err != nil {
		log.Error("Failed to initialize suspension cache", "error", err)
		os.Exit(1)
	}

	// Initialize services
	overviewService := service.NewOverviewService(client, cache)
	rankingService := service.NewRankingService(client, cache, cfg.Rankings)
	checkoutService := service.NewCheckoutService(client, cfg.Checkout)
	projectService := service.NewProjectService(client)

	// Initialize REST server
	server := dashboard.NewServer(log, cfg, overviewService, rankingService, checkoutService, projectService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Release the suspension cache's worker pool
	cache.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
