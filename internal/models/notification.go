package models

import "time"

// Notification type values, one per order lifecycle step.
const (
	NotificationOrderPlaced    = "order_placed"
	NotificationOrderReceived  = "order_received"
	NotificationOrderAccepted  = "order_accepted"
	NotificationOrderRejected  = "order_rejected"
	NotificationOrderCancelled = "order_cancelled"
)

// Notification is a user-scoped, append-only message. Only the Read flag is
// ever mutated after insert.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Type      string    `json:"type" gorm:"type:varchar(32)"`
	Message   string    `json:"message" gorm:"type:varchar(512)"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
