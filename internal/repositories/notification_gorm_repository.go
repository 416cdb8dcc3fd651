package repositories

import (
	"fmt"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create inserts a new notification.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *GORMNotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on one of the user's notifications.
func (r *GORMNotificationRepository) MarkRead(id, userID string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification with ID %s not found for user %s", id, userID)
	}
	return nil
}

// MarkAllRead flips the read flag on every unread notification of the user.
func (r *GORMNotificationRepository) MarkAllRead(userID string) error {
	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
