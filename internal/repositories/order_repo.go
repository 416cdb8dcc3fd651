package repositories

import (
	"pasar/internal/models"
)

// OrderRepository defines the interface for order data access. Reads that
// return orders preload the linked product so callers can inspect its sold
// flag without a second query.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByBuyer(buyerID string) ([]models.Order, error)
	ListBySeller(sellerID string) ([]models.Order, error)
	FindPending(buyerID, productID string) (*models.Order, error)
	ListPendingByProduct(productID, excludeOrderID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
	// Accept atomically marks the order accepted, flags its product as
	// bought, rejects the sibling orders and inserts the notifications.
	// Either all of it commits or none of it does.
	Accept(order *models.Order, siblingIDs []string, notifications []models.Notification) error
	Delete(id string) error
}
