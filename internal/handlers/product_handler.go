package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"fruteria/internal/models"
	"fruteria/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if patch.IsEmpty() {
		return badRequest(c, "Nothing to update", errors.New("request body sets no product field"))
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update product %d", id), err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product. Its movements are kept.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, fmt.Sprintf("Could not delete product %d", id), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}
