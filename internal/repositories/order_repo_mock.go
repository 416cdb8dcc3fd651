package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Accept has to cascade into products and notifications, so the mock holds
// references to its sibling in-memory repositories.
type MockOrderRepository struct {
	orders        map[string]models.Order
	products      *MockProductRepository
	notifications *MockNotificationRepository
	mu            sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository, notifications *MockNotificationRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:        make(map[string]models.Order),
		products:      products,
		notifications: notifications,
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID with the product attached.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	r.attachProduct(&order)
	return &order, nil
}

// attachProduct fills in the preloaded product, mirroring the GORM repo.
func (r *MockOrderRepository) attachProduct(order *models.Order) {
	if r.products == nil {
		return
	}
	if product, err := r.products.GetByID(order.ProductID); err == nil {
		order.Product = *product
	}
}

// ListByBuyer returns the orders placed by a buyer, newest first.
func (r *MockOrderRepository) ListByBuyer(buyerID string) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.BuyerID == buyerID })
}

// ListBySeller returns the orders received by a seller, newest first.
func (r *MockOrderRepository) ListBySeller(sellerID string) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.SellerID == sellerID })
}

func (r *MockOrderRepository) list(match func(models.Order) bool) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			r.attachProduct(&order)
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// FindPending returns the buyer's pending order on a product, if any.
func (r *MockOrderRepository) FindPending(buyerID, productID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.BuyerID == buyerID && order.ProductID == productID && order.Status == models.OrderStatusPending {
			return &order, nil
		}
	}
	return nil, fmt.Errorf("no pending order by buyer %s on product %s", buyerID, productID)
}

// ListPendingByProduct returns pending orders on a product, excluding one
// order ID (pass "" to exclude none).
func (r *MockOrderRepository) ListPendingByProduct(productID, excludeOrderID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.ProductID == productID && order.Status == models.OrderStatusPending && order.ID != excludeOrderID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Accept performs the accept cascade under one lock, mirroring the
// single-transaction semantics of the GORM repository.
func (r *MockOrderRepository) Accept(order *models.Order, siblingIDs []string, notifications []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok || stored.Status != models.OrderStatusPending {
		return fmt.Errorf("order with ID %s is no longer pending", order.ID)
	}

	product, err := r.products.GetByID(order.ProductID)
	if err != nil {
		return err
	}
	if product.IsBought {
		return fmt.Errorf("product with ID %s is already sold", order.ProductID)
	}
	product.IsBought = true
	if err := r.products.Update(product); err != nil {
		return err
	}

	stored.Status = models.OrderStatusAccepted
	stored.UpdatedAt = time.Now()
	r.orders[stored.ID] = stored

	for _, siblingID := range siblingIDs {
		if sibling, ok := r.orders[siblingID]; ok {
			sibling.Status = models.OrderStatusRejected
			sibling.UpdatedAt = time.Now()
			r.orders[siblingID] = sibling
		}
	}

	if r.notifications != nil {
		for i := range notifications {
			if err := r.notifications.Create(&notifications[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

// Delete removes an order row entirely.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for deletion", id)
	}
	delete(r.orders, id)
	return nil
}
