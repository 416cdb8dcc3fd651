package services

import (
	"fmt"
	"log"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"
)

// OrderService handles the purchase-request lifecycle: a buyer places a
// request on a product, the seller accepts or rejects it, and the buyer may
// cancel it while it is still pending. Accepting marks the product as sold
// and rejects every other pending request on it.
type OrderService struct {
	orderRepo        repositories.OrderRepository
	productRepo      repositories.ProductRepository
	notificationRepo repositories.NotificationRepository
	mqClient         *rabbitmq.Client // optional, nil disables event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	notificationRepo repositories.NotificationRepository,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		mqClient:         mqClient,
	}
}

// CreateOrder places a pending purchase request by buyerID on productID.
func (s *OrderService) CreateOrder(buyerID, productID string) (*models.Order, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", productID, ErrNotFound)
	}
	if product.SellerID == buyerID {
		return nil, fmt.Errorf("cannot order your own product: %w", ErrForbidden)
	}
	if product.IsBought {
		return nil, fmt.Errorf("product %q is already sold: %w", product.Title, ErrConflict)
	}
	if _, err := s.orderRepo.FindPending(buyerID, productID); err == nil {
		return nil, fmt.Errorf("you already have a pending request on product %q: %w", product.Title, ErrConflict)
	}

	order := &models.Order{
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
		ProductID: product.ID,
		Status:    models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Product = *product

	s.notify(buyerID, models.NotificationOrderPlaced,
		fmt.Sprintf("Your purchase request for %q has been placed.", product.Title))
	s.notify(product.SellerID, models.NotificationOrderReceived,
		fmt.Sprintf("You received a purchase request for %q.", product.Title))

	s.publishEvent("order.created", order)

	return order, nil
}

// ListBuyerOrders retrieves the requests placed by a buyer, newest first.
func (s *OrderService) ListBuyerOrders(buyerID string) ([]models.Order, error) {
	return s.orderRepo.ListByBuyer(buyerID)
}

// ListSellerOrders retrieves the requests received by a seller, newest first.
func (s *OrderService) ListSellerOrders(sellerID string) ([]models.Order, error) {
	return s.orderRepo.ListBySeller(sellerID)
}

// UpdateOrderStatus resolves a pending order. Only the order's seller may
// call it, and status must be accepted or rejected. Accepting cascades:
// the product is flagged sold, every sibling pending order on it is
// rejected, and all of that commits in one transaction together with the
// outcome notifications.
func (s *OrderService) UpdateOrderStatus(orderID, actorID, status string) (*models.Order, error) {
	if status != models.OrderStatusAccepted && status != models.OrderStatusRejected {
		return nil, fmt.Errorf("invalid order status %q: %w", status, ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, ErrNotFound)
	}
	if order.Product.IsBought {
		return nil, fmt.Errorf("product %q is already sold: %w", order.Product.Title, ErrConflict)
	}
	if order.Status == models.OrderStatusRejected {
		return nil, fmt.Errorf("order is already rejected: %w", ErrConflict)
	}
	if order.SellerID != actorID {
		return nil, fmt.Errorf("only the seller can resolve this order: %w", ErrForbidden)
	}

	if status == models.OrderStatusRejected {
		if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusRejected); err != nil {
			return nil, fmt.Errorf("failed to reject order: %w", err)
		}
		order.Status = models.OrderStatusRejected

		s.notify(order.BuyerID, models.NotificationOrderRejected,
			fmt.Sprintf("Your purchase request for %q was rejected.", order.Product.Title))
		s.publishEvent("order.rejected", order)

		return order, nil
	}

	siblings, err := s.orderRepo.ListPendingByProduct(order.ProductID, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load competing orders: %w", err)
	}

	notifications := []models.Notification{{
		UserID:  order.BuyerID,
		Type:    models.NotificationOrderAccepted,
		Message: fmt.Sprintf("Your purchase request for %q was accepted. The seller will contact you.", order.Product.Title),
	}}
	siblingIDs := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		siblingIDs = append(siblingIDs, sibling.ID)
		notifications = append(notifications, models.Notification{
			UserID:  sibling.BuyerID,
			Type:    models.NotificationOrderRejected,
			Message: fmt.Sprintf("Your purchase request for %q was rejected.", order.Product.Title),
		})
	}

	if err := s.orderRepo.Accept(order, siblingIDs, notifications); err != nil {
		// A concurrent accept on the same product loses the guarded update
		// inside the transaction and lands here.
		return nil, fmt.Errorf("failed to accept order: %v: %w", err, ErrConflict)
	}
	order.Status = models.OrderStatusAccepted
	order.Product.IsBought = true

	s.publishEvent("order.accepted", order)

	return order, nil
}

// CancelOrder removes a pending order at the buyer's request. The row is
// deleted outright, not flipped to a terminal status.
func (s *OrderService) CancelOrder(orderID, actorID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("order with ID %s: %w", orderID, ErrNotFound)
	}
	if order.BuyerID != actorID {
		return fmt.Errorf("only the buyer can cancel this order: %w", ErrForbidden)
	}
	if order.Status == models.OrderStatusRejected {
		return fmt.Errorf("order is already rejected: %w", ErrConflict)
	}
	if order.Status == models.OrderStatusAccepted {
		return fmt.Errorf("accepted orders cannot be cancelled: %w", ErrConflict)
	}

	if err := s.orderRepo.Delete(order.ID); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.notify(order.BuyerID, models.NotificationOrderCancelled,
		fmt.Sprintf("You cancelled your purchase request for %q.", order.Product.Title))
	s.notify(order.SellerID, models.NotificationOrderCancelled,
		fmt.Sprintf("A purchase request for %q was cancelled by the buyer.", order.Product.Title))

	s.publishEvent("order.cancelled", order)

	return nil
}

// notify inserts a notification best-effort; delivery is at-most-once and a
// failed insert only logs a warning.
func (s *OrderService) notify(userID, notificationType, message string) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Printf("Warning: Failed to create %s notification for user %s: %v", notificationType, userID, err)
	}
}

// publishEvent publishes an order lifecycle event best-effort.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	event := rabbitmq.OrderEvent{
		OrderID:   order.ID,
		ProductID: order.ProductID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		Status:    order.Status,
		At:        time.Now(),
	}
	if err := s.mqClient.PublishOrderEvent(routingKey, event); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
