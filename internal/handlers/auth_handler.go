package handlers

import (
	"errors"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log.Named("auth_handler"),
	}
}

// RegisterRoutes registers the authentication routes. Register and login
// are public; check-status goes through authRequired.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/check-status", authRequired, h.HandleCheckStatus)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	FullName string `json:"fullName" validate:"required,min=1"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration and logs the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user := &models.User{Email: req.Email, FullName: req.FullName, Password: req.Password}
	if err := h.authService.RegisterUser(c.UserContext(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return respondError(c, h.log, err)
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"error":   err.Error(),
			})
		}
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// HandleCheckStatus issues a fresh token for the authenticated caller.
func (h *AuthHandler) HandleCheckStatus(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return respondError(c, h.log, errors.New("check-status reached without identity"))
	}

	token, err := h.authService.IssueToken(identity.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"id":       identity.ID,
		"fullName": identity.FullName,
		"roles":    identity.Roles,
		"token":    token,
	})
}
