package repositories

import (
	"fmt"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create adds a new order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Omit("Product").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its product preloaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Product").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// ListByBuyer retrieves the orders placed by a buyer, newest first.
func (r *GORMOrderRepository) ListByBuyer(buyerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Product").Where("buyer_id = ?", buyerID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for buyer %s: %w", buyerID, err)
	}
	return orders, nil
}

// ListBySeller retrieves the orders received by a seller, newest first.
func (r *GORMOrderRepository) ListBySeller(sellerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Product").Where("seller_id = ?", sellerID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for seller %s: %w", sellerID, err)
	}
	return orders, nil
}

// FindPending returns the buyer's pending order on a product, if any.
func (r *GORMOrderRepository) FindPending(buyerID, productID string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "buyer_id = ? AND product_id = ? AND status = ?",
		buyerID, productID, models.OrderStatusPending).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no pending order by buyer %s on product %s", buyerID, productID)
		}
		return nil, fmt.Errorf("failed to find pending order: %w", err)
	}
	return &order, nil
}

// ListPendingByProduct returns pending orders on a product, excluding one
// order ID (pass "" to exclude none).
func (r *GORMOrderRepository) ListPendingByProduct(productID, excludeOrderID string) ([]models.Order, error) {
	query := r.db.Where("product_id = ? AND status = ?", productID, models.OrderStatusPending)
	if excludeOrderID != "" {
		query = query.Where("id <> ?", excludeOrderID)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending orders for product %s: %w", productID, err)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// Accept performs the whole accept cascade in one transaction. The status
// and sold-flag updates are guarded so a concurrent accept on the same
// product makes exactly one of the two transactions commit.
func (r *GORMOrderRepository) Accept(order *models.Order, siblingIDs []string, notifications []models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusAccepted)
		if res.Error != nil {
			return fmt.Errorf("failed to accept order %s: %w", order.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %s is no longer pending", order.ID)
		}

		res = tx.Model(&models.Product{}).
			Where("id = ? AND is_bought = ?", order.ProductID, false).
			Update("is_bought", true)
		if res.Error != nil {
			return fmt.Errorf("failed to mark product %s as bought: %w", order.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s is already sold", order.ProductID)
		}

		if len(siblingIDs) > 0 {
			if err := tx.Model(&models.Order{}).Where("id IN ?", siblingIDs).
				Update("status", models.OrderStatusRejected).Error; err != nil {
				return fmt.Errorf("failed to reject sibling orders: %w", err)
			}
		}

		if len(notifications) > 0 {
			for i := range notifications {
				if notifications[i].ID == "" {
					notifications[i].ID = uuid.New().String()
				}
			}
			if err := tx.Create(&notifications).Error; err != nil {
				return fmt.Errorf("failed to create notifications: %w", err)
			}
		}

		return nil
	})
}

// Delete removes an order row entirely.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for deletion", id)
	}
	return nil
}
