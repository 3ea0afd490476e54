package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deccan-store/internal/config"
	"deccan-store/internal/database"
	"deccan-store/internal/gateway"
	"deccan-store/internal/handler"
	"deccan-store/internal/repository"
	"deccan-store/internal/router"
	"deccan-store/internal/service"
	"deccan-store/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting deccan-store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema migrations
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)

	// Initialize payment gateway client
	gatewayClient := gateway.NewRazorpayClient(cfg.Razorpay, logger)

	// Initialize image uploader when object storage is configured
	var uploader storage.Uploader
	if cfg.S3.Enabled {
		uploader, err = storage.NewS3Uploader(ctx, cfg.S3, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 uploader, image uploads disabled")
			uploader = nil
		}
	} else {
		logger.Info().Msg("image uploads disabled (S3 disabled)")
	}

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	orderService := service.NewOrderService(orderRepo, gatewayClient, cfg.Razorpay, logger)
	cartService := service.NewCartService(cartRepo, logger)

	// Initialize HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	paymentHandler := handler.NewPaymentHandler(orderService, cfg.Razorpay, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	uploadHandler := handler.NewUploadHandler(uploader, logger)

	// Initialize router
	mux := router.New(
		categoryHandler,
		productHandler,
		paymentHandler,
		orderHandler,
		cartHandler,
		uploadHandler,
		cfg.Auth.APIKey,
		logger,
	)

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
