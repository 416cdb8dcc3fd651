package handlers

import (
	"fmt"
	"log"
	"strconv"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for product listings.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/my", h.HandleGetMyProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// parseFilter builds a ProductFilter from the listing query parameters:
// category, q (title search), lat/lng/radius_km, include_sold.
func parseFilter(c *fiber.Ctx) (repositories.ProductFilter, error) {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	filter.IncludeSold = c.Query("include_sold") == "true"

	if radius := c.Query("radius_km"); radius != "" {
		radiusKM, err := strconv.ParseFloat(radius, 64)
		if err != nil || radiusKM <= 0 {
			return filter, fmt.Errorf("radius_km must be a positive number")
		}
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			return filter, fmt.Errorf("lat and lng are required with radius_km")
		}
		filter.RadiusKM = radiusKM
		filter.Latitude = lat
		filter.Longitude = lng
	}
	return filter, nil
}

// HandleGetProducts lists products matching the query filters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	products, err := h.service.GetAllProducts(filter)
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Products", products)
}

// HandleGetMyProducts lists the caller's own listings, sold ones included.
func (h *ProductHandler) HandleGetMyProducts(c *fiber.Ctx) error {
	products, err := h.service.GetSellerProducts(userID(c))
	if err != nil {
		log.Printf("Error getting own products: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "My products", products)
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product", product)
}

// HandleCreateProduct creates a listing owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return respondBadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(product); err != nil {
		return respondBadRequest(c, validationMessage(err))
	}

	if err := h.service.CreateProduct(userID(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Product created", product)
}

// HandleUpdateProduct updates one of the caller's listings.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return respondBadRequest(c, "Invalid request body")
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return respondBadRequest(c, validationMessage(err))
	}

	if err := h.service.UpdateProduct(userID(c), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product updated", product)
}

// HandleDeleteProduct deletes one of the caller's listings.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(userID(c), id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product deleted successfully", nil)
}

// validationMessage flattens validator errors into one display string.
func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Validation failed"
	}
	message := "Validation failed:"
	for _, e := range validationErrors {
		message += fmt.Sprintf(" field '%s' failed on the '%s' tag;", e.Field(), e.Tag())
	}
	return message
}
