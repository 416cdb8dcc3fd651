package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockNotificationRepository is an in-memory implementation of NotificationRepository.
type MockNotificationRepository struct {
	notifications map[string]models.Notification
	mu            sync.RWMutex
}

// NewMockNotificationRepository creates a new instance of MockNotificationRepository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]models.Notification),
	}
}

// Create inserts a new notification.
func (r *MockNotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(notification)
	return nil
}

// insertLocked stores a notification; the caller must hold the write lock.
func (r *MockNotificationRepository) insertLocked(notification *models.Notification) {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.notifications[notification.ID] = *notification
}

// ListByUser retrieves a user's notifications, newest first.
func (r *MockNotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// MarkRead flips the read flag on one of the user's notifications.
func (r *MockNotificationRepository) MarkRead(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification with ID %s not found for user %s", id, userID)
	}
	n.Read = true
	r.notifications[id] = n
	return nil
}

// MarkAllRead flips the read flag on every unread notification of the user.
func (r *MockNotificationRepository) MarkAllRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.notifications[id] = n
		}
	}
	return nil
}
