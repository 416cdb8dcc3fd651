package repositories

import "pasar/internal/models"

// NotificationRepository defines the interface for notification data access.
// Notifications are append-only; MarkRead and MarkAllRead are the only
// mutations.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID string) ([]models.Notification, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
}
