package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/mocks"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderServiceForTest(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository, shops *mocks.MockShopRepository, users *mocks.MockUserRepository, carts *mocks.MockCartRepository) *OrderService {
	return NewOrderService(orders, products, shops, users, carts, nil, zap.NewNop())
}

func checkoutFixtures() ([]models.Product, []models.Line, models.ShippingAddress) {
	products := []models.Product{
		{ID: 1, ShopID: 10, Name: "Mug", Price: 10, Stock: 5},
		{ID: 2, ShopID: 20, Name: "Shirt", Price: 25, Stock: 3},
	}
	lines := []models.Line{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	addr := models.ShippingAddress{
		FullName:   "Ada Lovelace",
		Street:     "1 Analytical Way",
		City:       "London",
		PostalCode: "E1 6AN",
		Country:    "UK",
	}
	return products, lines, addr
}

func TestPlaceOrderFansOutPerVendor(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	catalog, lines, addr := checkoutFixtures()
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Name: "Ada", Email: "ada@example.com"}, nil)
	products.On("FindByIDs", mock.Anything, []uint{1, 2}).Return(catalog, nil)
	orders.On("Place", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	carts.On("Clear", mock.Anything, uint(7)).Return(nil)

	order, replayed, err := svc.PlaceOrder(context.Background(), 7, lines, addr, "")
	require.NoError(t, err)
	assert.False(t, replayed)

	assert.Equal(t, 45.0, order.TotalAmount)
	require.Len(t, order.SubOrders, 2)
	assert.Equal(t, uint(10), order.SubOrders[0].ShopID)
	assert.Equal(t, 20.0, order.SubOrders[0].TotalAmount)
	assert.Equal(t, uint(20), order.SubOrders[1].ShopID)
	assert.Equal(t, 25.0, order.SubOrders[1].TotalAmount)

	var sum float64
	for _, sub := range order.SubOrders {
		sum += sub.TotalAmount
	}
	assert.Equal(t, order.TotalAmount, sum)

	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestPlaceOrderWritesOutboxEvent(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	catalog, lines, addr := checkoutFixtures()
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Name: "Ada", Email: "ada@example.com"}, nil)
	products.On("FindByIDs", mock.Anything, []uint{1, 2}).Return(catalog, nil)

	var captured *models.OutboxEvent
	orders.On("Place", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(*models.OutboxEvent)
		}).
		Return(nil)
	carts.On("Clear", mock.Anything, uint(7)).Return(nil)

	order, _, err := svc.PlaceOrder(context.Background(), 7, lines, addr, "")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, models.EventOrderPlaced, captured.Type)
	assert.Equal(t, models.OutboxPending, captured.Status)

	var payload models.OrderPlacedPayload
	require.NoError(t, json.Unmarshal([]byte(captured.Payload), &payload))
	assert.Equal(t, order.OrderNo, payload.OrderNo)
	assert.Equal(t, "ada@example.com", payload.Email)
	assert.Equal(t, 45.0, payload.TotalAmount)
	assert.Equal(t, 2, payload.VendorCount)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	catalog, _, addr := checkoutFixtures()
	lines := []models.Line{{ProductID: 1, Quantity: 99}}
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	products.On("FindByIDs", mock.Anything, []uint{1}).Return(catalog, nil)

	_, _, err := svc.PlaceOrder(context.Background(), 7, lines, addr, "")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// Nothing may reach the repository when the build fails.
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestPlaceOrderEmpty(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	_, _, addr := checkoutFixtures()
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	products.On("FindByIDs", mock.Anything, []uint{}).Return([]models.Product{}, nil)

	_, _, err := svc.PlaceOrder(context.Background(), 7, nil, addr, "")
	assert.ErrorIs(t, err, models.ErrEmptyOrder)
}

func TestPlaceOrderIdempotentReplay(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	existing := &models.Order{ID: 42, OrderNo: "abc", TotalAmount: 45}
	orders.On("FindByIdempotencyKey", mock.Anything, "key-1").Return(existing, nil)

	_, lines, addr := checkoutFixtures()
	order, replayed, err := svc.PlaceOrder(context.Background(), 7, lines, addr, "key-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, existing, order)

	// No stock is touched on a replay.
	products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderIdempotencyRace(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	catalog, lines, addr := checkoutFixtures()
	winner := &models.Order{ID: 42, OrderNo: "abc"}

	orders.On("FindByIdempotencyKey", mock.Anything, "key-1").Return(nil, nil).Once()
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	products.On("FindByIDs", mock.Anything, []uint{1, 2}).Return(catalog, nil)
	orders.On("Place", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("duplicate key"))
	orders.On("FindByIdempotencyKey", mock.Anything, "key-1").Return(winner, nil).Once()

	order, replayed, err := svc.PlaceOrder(context.Background(), 7, lines, addr, "key-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, winner, order)
}

func TestUpdateSubOrderStatusByOwningVendor(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	sub := &models.SubOrder{ID: 5, OrderID: 3, ShopID: 10, Status: models.SubOrderPending}
	orders.On("FindSubOrder", mock.Anything, uint(5)).Return(sub, nil).Once()
	shops.On("FindByOwner", mock.Anything, uint(7)).Return(&models.Shop{ID: 10, OwnerID: 7}, nil)
	orders.On("FindByID", mock.Anything, uint(3)).Return(&models.Order{ID: 3, OrderNo: "abc"}, nil)
	orders.On("TransitionSubOrder", mock.Anything, uint(5), models.SubOrderPending, models.SubOrderProcessing, mock.Anything).Return(nil)
	updated := &models.SubOrder{ID: 5, OrderID: 3, ShopID: 10, Status: models.SubOrderProcessing}
	orders.On("FindSubOrder", mock.Anything, uint(5)).Return(updated, nil).Once()

	got, err := svc.UpdateSubOrderStatus(context.Background(), 7, models.RoleVendor, 5, models.SubOrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.SubOrderProcessing, got.Status)
	orders.AssertExpectations(t)
}

func TestUpdateSubOrderStatusForeignVendor(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	sub := &models.SubOrder{ID: 5, OrderID: 3, ShopID: 10, Status: models.SubOrderPending}
	orders.On("FindSubOrder", mock.Anything, uint(5)).Return(sub, nil)
	shops.On("FindByOwner", mock.Anything, uint(8)).Return(&models.Shop{ID: 99, OwnerID: 8}, nil)

	_, err := svc.UpdateSubOrderStatus(context.Background(), 8, models.RoleVendor, 5, models.SubOrderProcessing)
	assert.ErrorIs(t, err, models.ErrForbidden)
	orders.AssertNotCalled(t, "TransitionSubOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSubOrderStatusIllegalTransition(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	sub := &models.SubOrder{ID: 5, OrderID: 3, ShopID: 10, Status: models.SubOrderDelivered}
	orders.On("FindSubOrder", mock.Anything, uint(5)).Return(sub, nil)
	shops.On("FindByOwner", mock.Anything, uint(7)).Return(&models.Shop{ID: 10, OwnerID: 7}, nil)

	_, err := svc.UpdateSubOrderStatus(context.Background(), 7, models.RoleVendor, 5, models.SubOrderProcessing)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestUpdateSubOrderStatusUnknownState(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	_, err := svc.UpdateSubOrderStatus(context.Background(), 7, models.RoleAdmin, 5, "refunded")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	orders.On("FindByID", mock.Anything, uint(3)).Return(&models.Order{ID: 3, UserID: 1}, nil)

	_, err := svc.GetOrder(context.Background(), 2, models.RoleCustomer, 3)
	assert.ErrorIs(t, err, models.ErrForbidden)

	got, err := svc.GetOrder(context.Background(), 2, models.RoleAdmin, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
}

func TestVendorOrdersWithoutShop(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	shops := new(mocks.MockShopRepository)
	users := new(mocks.MockUserRepository)
	carts := new(mocks.MockCartRepository)
	svc := newOrderServiceForTest(orders, products, shops, users, carts)

	shops.On("FindByOwner", mock.Anything, uint(7)).Return(nil, nil)

	_, err := svc.VendorOrders(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrShopNotFound)
}
