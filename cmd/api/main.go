package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plantkart/internal/config"
	"plantkart/internal/database"
	"plantkart/internal/delivery"
	"plantkart/internal/handler"
	"plantkart/internal/order"
	"plantkart/internal/repository"
	"plantkart/internal/router"
	"plantkart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting plantkart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	merchantRepo := repository.NewMerchantRepository(pool, logger)

	// Initialize pincode loader with S3 and local fallback
	fileLoader := delivery.NewFileLoader(logger)
	var pincodeLoader delivery.Loader

	if cfg.Delivery.S3Enabled {
		s3Loader, err := delivery.NewS3Loader(ctx, cfg.Delivery.S3Bucket, cfg.Delivery.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			pincodeLoader = fileLoader
		} else {
			pincodeLoader = delivery.NewFallbackLoader(s3Loader, fileLoader, cfg.Delivery.S3Prefix, true, logger)
		}
	} else {
		pincodeLoader = fileLoader
		logger.Info().Msg("using local file system for pincode files (S3 disabled)")
	}

	// Initialize serviceability checker
	checkerConfig := &delivery.CheckerConfig{FilePaths: cfg.Delivery.PincodeFiles}
	checker, err := delivery.NewChecker(ctx, checkerConfig, pincodeLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize serviceability checker: %w", err)
	}
	defer checker.Close()

	// Initialize order core components
	splitView := order.NewSplitView(orderRepo, merchantRepo, logger)
	validator := order.NewTotalsValidator(orderRepo, logger)
	repair := order.NewTotalsRepair(orderRepo, logger)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, splitView, checker, logger)
	reconService := service.NewReconciliationService(validator, repair, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	adminHandler := handler.NewAdminHandler(reconService, logger)

	// Initialize router
	mux := router.New(orderHandler, adminHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
