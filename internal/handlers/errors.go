package handlers

import (
	"errors"
	"fmt"

	"catalog/internal/auth"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// respondError maps domain errors to HTTP statuses. Unknown errors are
// logged and answered with the generic internal message.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	message := repositories.ErrInternal.Error()

	switch {
	case errors.Is(err, auth.ErrMissingIdentity):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInsufficientRole):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, repositories.ErrProductNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, repositories.ErrDuplicateProduct), errors.Is(err, repositories.ErrDuplicateUser):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, repositories.ErrInternal):
	default:
		log.Error("Unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"message":    message,
		"error":      utils.StatusMessage(status),
	})
}

// respondValidation reports the failed fields of a request struct.
func respondValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badRequest(c, "Invalid request", err)
	}

	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"statusCode": fiber.StatusBadRequest,
		"message":    "Validation failed",
		"errors":     errorMessages,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"statusCode": fiber.StatusBadRequest,
		"message":    message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
