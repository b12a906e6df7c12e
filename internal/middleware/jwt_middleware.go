package middleware

import (
	"errors"
	"strings"

	"catalog/internal/auth"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// identityKey is the fiber.Locals key holding the caller *auth.Identity.
const identityKey = "identity"

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// token must belong to an active user; the caller identity is stored for
// the handlers.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInactiveUser):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": err.Error(),
				})
			case errors.Is(err, services.ErrInvalidToken):
				log.Debug("JWT validation failed", zap.Error(err))
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired token",
				})
			default:
				log.Error("Failed to authenticate request", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "unexpected error, check server logs",
				})
			}
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// Identity returns the caller stored by AuthRequired, or nil.
func Identity(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}
