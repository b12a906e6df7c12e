package handlers

import (
	"fmt"

	"catalog/internal/auth"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newProductValidator(),
		log:      log.Named("product_handler"),
	}
}

// newProductValidator adds the "gender" tag used by product payloads.
func newProductValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return models.Gender(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// RegisterRoutes registers the product routes. The router is expected to
// sit behind middleware.AuthRequired.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Delete("/", h.HandleResetCatalog)
}

// HandleListProducts returns one page of products (?limit=&offset=).
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var page repositories.Pagination
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "Invalid pagination", err)
	}
	if err := h.validate.Struct(page); err != nil {
		return respondValidation(c, err)
	}

	products, err := h.service.ListProducts(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a product by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("term"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if err := h.service.Authorize(auth.OpCreateProduct, middleware.Identity(c)); err != nil {
		return respondError(c, h.log, err)
	}

	var fields models.ProductFields
	if err := c.BodyParser(&fields); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(fields); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), middleware.Identity(c), fields)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if err := h.service.Authorize(auth.OpUpdateProduct, middleware.Identity(c)); err != nil {
		return respondError(c, h.log, err)
	}

	id, ok := parseID(c)
	if !ok {
		return badRequest(c, fmt.Sprintf("Validation failed (uuid is expected): %s", c.Params("id")), nil)
	}

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), middleware.Identity(c), id, patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Authorize(auth.OpDeleteProduct, middleware.Identity(c)); err != nil {
		return respondError(c, h.log, err)
	}

	id, ok := parseID(c)
	if !ok {
		return badRequest(c, fmt.Sprintf("Validation failed (uuid is expected): %s", c.Params("id")), nil)
	}

	if err := h.service.DeleteProduct(c.UserContext(), middleware.Identity(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product with ID %s deleted successfully", id),
	})
}

// HandleResetCatalog deletes every product.
func (h *ProductHandler) HandleResetCatalog(c *fiber.Ctx) error {
	if err := h.service.ResetCatalog(c.UserContext(), middleware.Identity(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Catalog reset successfully",
	})
}

// parseID returns the canonical form of the :id parameter if it is a UUID.
func parseID(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
