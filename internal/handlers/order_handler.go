package handlers

import (
	"log"
	"time"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for purchase requests.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/order/request")
	orderRoutes.Post("/:productId", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleListMyOrders)
	orderRoutes.Get("/received", h.HandleListReceivedOrders)
	orderRoutes.Patch("/accept/:orderId", h.HandleAcceptOrder)
	orderRoutes.Patch("/reject/:orderId", h.HandleRejectOrder)
	orderRoutes.Delete("/delete/:orderId", h.HandleCancelOrder)
}

// OrderProductView is the shallow product projection embedded in listings.
type OrderProductView struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	IsBought bool    `json:"is_bought"`
	Delivery bool    `json:"delivery"`
}

// OrderView is the response shape for a single order.
type OrderView struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Product   OrderProductView `json:"product"`
}

func toOrderView(order models.Order) OrderView {
	return OrderView{
		ID:        order.ID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Product: OrderProductView{
			ID:       order.ProductID,
			Title:    order.Product.Title,
			Price:    order.Product.Price,
			IsBought: order.Product.IsBought,
			Delivery: order.Product.Delivery,
		},
	}
}

func toOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}
	return views
}

// HandleCreateOrder places a purchase request on a product.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	productID := c.Params("productId")

	order, err := h.service.CreateOrder(userID(c), productID)
	if err != nil {
		log.Printf("Error creating order on product %s: %v", productID, err)
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Purchase request placed", toOrderView(*order))
}

// HandleListMyOrders lists the requests placed by the caller.
func (h *OrderHandler) HandleListMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListBuyerOrders(userID(c))
	if err != nil {
		log.Printf("Error listing buyer orders: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "My purchase requests", toOrderViews(orders))
}

// HandleListReceivedOrders lists the requests received on the caller's products.
func (h *OrderHandler) HandleListReceivedOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListSellerOrders(userID(c))
	if err != nil {
		log.Printf("Error listing seller orders: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Received purchase requests", toOrderViews(orders))
}

// HandleAcceptOrder accepts a pending request; competing requests on the
// same product are rejected as part of the same transition.
func (h *OrderHandler) HandleAcceptOrder(c *fiber.Ctx) error {
	return h.resolveOrder(c, models.OrderStatusAccepted, "Purchase request accepted")
}

// HandleRejectOrder rejects a pending request.
func (h *OrderHandler) HandleRejectOrder(c *fiber.Ctx) error {
	return h.resolveOrder(c, models.OrderStatusRejected, "Purchase request rejected")
}

func (h *OrderHandler) resolveOrder(c *fiber.Ctx, status, message string) error {
	orderID := c.Params("orderId")

	order, err := h.service.UpdateOrderStatus(orderID, userID(c), status)
	if err != nil {
		log.Printf("Error resolving order %s to %s: %v", orderID, status, err)
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, message, toOrderView(*order))
}

// HandleCancelOrder deletes a pending request at the buyer's demand.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	if err := h.service.CancelOrder(orderID, userID(c)); err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Purchase request cancelled", nil)
}
