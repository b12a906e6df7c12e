package server

import (
	"context"
	"time"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/metrics"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP application is assembled from.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Products  repositories.ProductRepository
	Users     repositories.UserRepository
	Publisher services.EventPublisher
	Metrics   *metrics.Metrics
	// Ping reports store health; nil means the store needs no check.
	Ping func(ctx context.Context) error
}

// New builds the Fiber application with every catalog route registered.
func New(d Deps) *fiber.App {
	productService := services.NewProductService(d.Products, services.ProductServiceOptions{
		Policy:    d.Config.Policy,
		Publisher: d.Publisher,
		Exchange:  d.Config.RabbitMQ.Exchange,
		Metrics:   d.Metrics,
		Logger:    d.Logger,
	})
	authService := services.NewAuthService(d.Users, d.Config.JWTSecret, d.Config.JWTTTL, d.Logger)

	productHandler := handlers.NewProductHandler(productService, d.Logger)
	authHandler := handlers.NewAuthHandler(authService, d.Logger)

	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
		UnescapePath:          true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", d.Metrics.Handler())
	}
	// Innermost, so a recovered panic still reaches the logger and metrics.
	app.Use(recover.New())

	app.Get("/health", healthHandler(d))

	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService, d.Logger)
	// Public auth routes must be registered before the protected group,
	// whose middleware applies to everything under /api/v1 that follows.
	authHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1.Group("", authRequired))

	return app
}

func healthHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": d.Config.Database.Driver,
			"events":   d.Publisher != nil,
		}

		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				d.Logger.Warn("Health check failed", zap.Error(err))
				status = fiber.StatusServiceUnavailable
				body["status"] = "unhealthy"
			}
		}
		return c.Status(status).JSON(body)
	}
}
