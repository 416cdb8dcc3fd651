package handlers

import (
	"log"

	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for the notification feed.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", h.HandleListNotifications)
	notificationRoutes.Patch("/read/:id", h.HandleMarkRead)
	notificationRoutes.Patch("/read-all", h.HandleMarkAllRead)
}

// HandleListNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) HandleListNotifications(c *fiber.Ctx) error {
	notifications, err := h.service.ListNotifications(userID(c))
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Notifications", notifications)
}

// HandleMarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.MarkRead(userID(c), id); err != nil {
		log.Printf("Error marking notification %s as read: %v", id, err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Notification marked as read", nil)
}

// HandleMarkAllRead marks all of the caller's notifications as read.
func (h *NotificationHandler) HandleMarkAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(userID(c)); err != nil {
		log.Printf("Error marking notifications as read: %v", err)
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "All notifications marked as read", nil)
}
