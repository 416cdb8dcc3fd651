package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

// orderFixture wires an OrderService against the in-memory repositories so
// the accept cascade runs with real repository semantics.
type orderFixture struct {
	products      *repositories.MockProductRepository
	orders        *repositories.MockOrderRepository
	notifications *repositories.MockNotificationRepository
	service       *services.OrderService
}

func newOrderFixture() *orderFixture {
	products := repositories.NewMockProductRepository()
	notifications := repositories.NewMockNotificationRepository()
	orders := repositories.NewMockOrderRepository(products, notifications)
	return &orderFixture{
		products:      products,
		orders:        orders,
		notifications: notifications,
		service:       services.NewOrderService(orders, products, notifications, nil),
	}
}

func (f *orderFixture) seedProduct(t *testing.T, sellerID, title string) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:  sellerID,
		Title:     title,
		Price:     100,
		Condition: models.ConditionUsed,
		Category:  "electronics",
	}
	assert.NoError(t, f.products.Create(product))
	return product
}

func (f *orderFixture) notificationCount(t *testing.T, userID string) int {
	t.Helper()
	notifications, err := f.notifications.ListByUser(userID)
	assert.NoError(t, err)
	return len(notifications)
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)

	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "buyer-1", order.BuyerID)
	assert.Equal(t, "seller-1", order.SellerID)

	// Product must still be on the market.
	stored, err := f.products.GetByID(product.ID)
	assert.NoError(t, err)
	assert.False(t, stored.IsBought)

	// One notification each for buyer and seller.
	assert.Equal(t, 1, f.notificationCount(t, "buyer-1"))
	assert.Equal(t, 1, f.notificationCount(t, "seller-1"))
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.CreateOrder("buyer-1", "missing-product")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_CreateOrder_OwnProduct(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("seller-1", product.ID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, 0, f.notificationCount(t, "seller-1"))
}

func TestOrderService_CreateOrder_ProductAlreadySold(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")
	product.IsBought = true
	assert.NoError(t, f.products.Update(product))

	order, err := f.service.CreateOrder("buyer-1", product.ID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestOrderService_CreateOrder_DuplicatePending(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	_, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	// Second request on the same product before resolution must conflict
	// and create no new row.
	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrConflict)

	orders, err := f.orders.ListByBuyer("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_AcceptOrder(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	accepted, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)
	sibling, err := f.service.CreateOrder("buyer-2", product.ID)
	assert.NoError(t, err)

	result, err := f.service.UpdateOrderStatus(accepted.ID, "seller-1", models.OrderStatusAccepted)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, result.Status)

	// Product is now sold.
	stored, err := f.products.GetByID(product.ID)
	assert.NoError(t, err)
	assert.True(t, stored.IsBought)

	// The competing pending order was rejected in the same transition.
	storedSibling, err := f.orders.GetByID(sibling.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusRejected, storedSibling.Status)

	// buyer-1: placed + accepted; buyer-2: placed + rejected.
	assert.Equal(t, 2, f.notificationCount(t, "buyer-1"))
	assert.Equal(t, 2, f.notificationCount(t, "buyer-2"))
}

func TestOrderService_AcceptOrder_NotSeller(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	result, err := f.service.UpdateOrderStatus(order.ID, "someone-else", models.OrderStatusAccepted)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// No state change.
	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	storedProduct, err := f.products.GetByID(product.ID)
	assert.NoError(t, err)
	assert.False(t, storedProduct.IsBought)
}

func TestOrderService_AcceptOrder_ProductAlreadySold(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	first, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)
	second, err := f.service.CreateOrder("buyer-2", product.ID)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(first.ID, "seller-1", models.OrderStatusAccepted)
	assert.NoError(t, err)

	// Accepting the already-rejected sibling must fail with conflict.
	result, err := f.service.UpdateOrderStatus(second.ID, "seller-1", models.OrderStatusAccepted)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestOrderService_RejectOrder(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	result, err := f.service.UpdateOrderStatus(order.ID, "seller-1", models.OrderStatusRejected)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusRejected, result.Status)

	// Product stays on the market.
	stored, err := f.products.GetByID(product.ID)
	assert.NoError(t, err)
	assert.False(t, stored.IsBought)

	// buyer-1: placed + rejected.
	assert.Equal(t, 2, f.notificationCount(t, "buyer-1"))
}

func TestOrderService_RejectOrder_AlreadyRejected(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(order.ID, "seller-1", models.OrderStatusRejected)
	assert.NoError(t, err)

	// Rejected is terminal; a second resolution attempt must conflict.
	result, err := f.service.UpdateOrderStatus(order.ID, "seller-1", models.OrderStatusRejected)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrConflict)

	result, err = f.service.UpdateOrderStatus(order.ID, "seller-1", models.OrderStatusAccepted)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestOrderService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	f := newOrderFixture()

	result, err := f.service.UpdateOrderStatus("any", "seller-1", "shipped")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestOrderService_UpdateOrderStatus_OrderNotFound(t *testing.T) {
	f := newOrderFixture()

	result, err := f.service.UpdateOrderStatus("missing", "seller-1", models.OrderStatusAccepted)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	err = f.service.CancelOrder(order.ID, "buyer-1")
	assert.NoError(t, err)

	// The row is gone, not status-flipped.
	_, err = f.orders.GetByID(order.ID)
	assert.Error(t, err)

	// buyer-1: placed + cancelled; seller-1: received + cancelled.
	assert.Equal(t, 2, f.notificationCount(t, "buyer-1"))
	assert.Equal(t, 2, f.notificationCount(t, "seller-1"))

	// Cancelling again must report not-found.
	err = f.service.CancelOrder(order.ID, "buyer-1")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_CancelOrder_NotBuyer(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	order, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)

	err = f.service.CancelOrder(order.ID, "seller-1")
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestOrderService_CancelOrder_Resolved(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct(t, "seller-1", "Old Camera")

	accepted, err := f.service.CreateOrder("buyer-1", product.ID)
	assert.NoError(t, err)
	rejected, err := f.service.CreateOrder("buyer-2", product.ID)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(rejected.ID, "seller-1", models.OrderStatusRejected)
	assert.NoError(t, err)
	_, err = f.service.UpdateOrderStatus(accepted.ID, "seller-1", models.OrderStatusAccepted)
	assert.NoError(t, err)

	// Accepted orders are immutable to the buyer.
	err = f.service.CancelOrder(accepted.ID, "buyer-1")
	assert.ErrorIs(t, err, services.ErrConflict)

	// Rejected orders cannot be cancelled either.
	err = f.service.CancelOrder(rejected.ID, "buyer-2")
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestOrderService_Listings(t *testing.T) {
	f := newOrderFixture()
	first := f.seedProduct(t, "seller-1", "Old Camera")
	second := f.seedProduct(t, "seller-1", "Record Player")

	_, err := f.service.CreateOrder("buyer-1", first.ID)
	assert.NoError(t, err)
	_, err = f.service.CreateOrder("buyer-1", second.ID)
	assert.NoError(t, err)
	_, err = f.service.CreateOrder("buyer-2", first.ID)
	assert.NoError(t, err)

	mine, err := f.service.ListBuyerOrders("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, "buyer-1", order.BuyerID)
		assert.NotEmpty(t, order.Product.Title) // product projection attached
	}

	received, err := f.service.ListSellerOrders("seller-1")
	assert.NoError(t, err)
	assert.Len(t, received, 3)
}
