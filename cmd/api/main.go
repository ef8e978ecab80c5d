package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/auth"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/events"
	"marketplace/internal/handler"
	"marketplace/internal/middleware"
	"marketplace/internal/repository"
	"marketplace/internal/router"
	"marketplace/internal/seed"
	"marketplace/internal/service"

	"github.com/rs/zerolog"
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
	logger.Info().Msg("starting marketplace API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Token denylist: Redis when enabled, otherwise process-local
	var denylist auth.Denylist
	if cfg.Redis.Enabled {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()
		denylist = auth.NewRedisDenylist(client, logger)
	} else {
		logger.Info().Msg("redis disabled, revoked tokens are tracked in memory")
		denylist = auth.NewMemoryDenylist()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer, denylist)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Domain events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, cfg.Kafka.CatalogTopic, logger)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("publishing domain events to kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	coordinateRepo := repository.NewCoordinateRepository(pool, logger)

	if err := seedCoordinates(ctx, cfg, coordinateRepo, logger); err != nil {
		return fmt.Errorf("failed to seed coordinates: %w", err)
	}

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, tokens, logger)
	catalogService := service.NewCatalogService(catalogRepo, publisher, logger)
	orderService := service.NewOrderService(orderRepo, catalogRepo, publisher, logger)
	coordinateService := service.NewCoordinateService(coordinateRepo, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		User:       handler.NewUserHandler(userService, logger),
		Catalog:    handler.NewCatalogHandler(catalogService, logger),
		Order:      handler.NewOrderHandler(orderService, logger),
		Coordinate: handler.NewCoordinateHandler(coordinateService, logger),
	}, middleware.NewGate(tokens, logger), logger)

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

// seedCoordinates imports the configured sample files when the store is empty.
func seedCoordinates(ctx context.Context, cfg *config.Config, store seed.Store, logger zerolog.Logger) error {
	if len(cfg.Seed.CoordinateFiles) == 0 {
		return nil
	}

	// S3 first when enabled, local file system as fallback
	fileLoader := seed.NewFileLoader(logger)
	var s3Loader seed.Loader

	if cfg.S3.Enabled {
		loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for coordinate files (S3 disabled)")
	}

	importer := seed.NewImporter(seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger), store, logger)
	_, err := importer.ImportIfEmpty(ctx, cfg.Seed.CoordinateFiles)
	return err
}
