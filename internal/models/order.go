package models

import "time"

// Order status values. An order starts as pending and is resolved exactly
// once: the seller accepts or rejects it, or the buyer cancels it while it
// is still pending (cancellation deletes the row instead of flipping status).
const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusRejected = "rejected"
)

// Order represents one buyer's request to purchase one product from its
// owner. SellerID is denormalized from the product at creation time so the
// seller's inbox can be listed without a join.
type Order struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BuyerID   string    `json:"buyer_id" gorm:"index;type:varchar(36)"`
	SellerID  string    `json:"seller_id" gorm:"index;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)"`
	Status    string    `json:"status" gorm:"type:varchar(16);default:'pending'"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
