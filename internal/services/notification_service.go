package services

import (
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// NotificationService handles a user's in-app notification feed.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// ListNotifications retrieves a user's notifications, newest first.
func (s *NotificationService) ListNotifications(userID string) ([]models.Notification, error) {
	return s.repo.ListByUser(userID)
}

// MarkRead flips the read flag on one of the user's notifications.
func (s *NotificationService) MarkRead(userID, id string) error {
	if err := s.repo.MarkRead(id, userID); err != nil {
		return fmt.Errorf("notification with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkAllRead flips the read flag on all of the user's notifications.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}
