package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	applogger "catalog/internal/logger"
	"catalog/internal/metrics"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	app, cleanup, err := buildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start application", zap.Error(err))
	}
	defer cleanup()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

// buildApp wires stores, the optional event broker and the HTTP application.
// The returned cleanup releases every opened resource.
func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := server.Deps{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New("catalog"),
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		deps.Products = repositories.NewMockProductRepository()
		deps.Users = repositories.NewMockUserRepository()
	default:
		db, err := database.Open(cfg.Database, logger)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { database.Close(db, logger) })

		if err := database.Migrate(db); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		deps.Products = repositories.NewGORMProductRepository(db, logger)
		deps.Users = repositories.NewGORMUserRepository(db)
		deps.Ping = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		}, logger)
		if err != nil {
			// Events are best effort; the catalog keeps serving without them.
			logger.Warn("Catalog events disabled", zap.Error(err))
		} else {
			deps.Publisher = mqClient
			closers = append(closers, func() {
				if err := mqClient.Close(); err != nil {
					logger.Error("Error closing RabbitMQ client", zap.Error(err))
				}
			})
			if cfg.RabbitMQ.Queue != "" {
				if err := mqClient.ConsumeCatalogEvents(rabbitmq.LogCatalogEvent(logger)); err != nil {
					logger.Warn("Failed to start catalog event consumer", zap.Error(err))
				}
			}
		}
	}

	if cfg.SeedOnStart {
		seed := services.NewSeedService(deps.Products, deps.Users, services.DefaultSeedData(), logger)
		if err := seed.Run(ctx); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("seed failed: %w", err)
		}
	}

	return server.New(deps), cleanup, nil
}
