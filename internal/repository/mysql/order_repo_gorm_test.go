package mysql

import (
	"context"
	"testing"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func placementFixture() (*models.Order, *models.OutboxEvent) {
	order := &models.Order{
		OrderNo:     "ord-1",
		UserID:      7,
		TotalAmount: 20,
		Status:      models.OrderPending,
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Mug", Price: 10, Quantity: 2},
		},
		SubOrders: []models.SubOrder{
			{ShopID: 10, TotalAmount: 20, Status: models.SubOrderPending, Items: []models.SubOrderItem{
				{ProductID: 1, Name: "Mug", Price: 10, Quantity: 2},
			}},
		},
	}
	event := &models.OutboxEvent{
		EventID: "e1",
		Type:    models.EventOrderPlaced,
		Payload: "{}",
		Status:  models.OutboxPending,
	}
	return order, event
}

func TestPlaceInsufficientStockRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	order, event := placementFixture()

	mock.ExpectBegin()
	// The reservation sees only 1 unit left, so zero rows match.
	mock.ExpectExec("UPDATE `products` SET").
		WithArgs(2, 1, 2, 10.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"stock", "price"}).AddRow(1, 10.0))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order, event)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceUnknownProductRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	order, event := placementFixture()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"stock", "price"}))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order, event)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacePriceChangedRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	order, event := placementFixture()

	mock.ExpectBegin()
	// Stock would suffice, but the row no longer carries the quoted price.
	mock.ExpectExec("UPDATE `products` SET").
		WithArgs(2, 1, 2, 10.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"stock", "price"}).AddRow(5, 12.0))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order, event)
	assert.ErrorIs(t, err, models.ErrPriceChanged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacePersistsOrderAndOutboxEvent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	order, event := placementFixture()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").
		WithArgs(2, 1, 2, 10.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `sub_orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `sub_order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `outbox_events`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Place(context.Background(), order, event))
	assert.Equal(t, order.ID, event.AggregateID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionSubOrderConcurrentConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	// A concurrent transition already moved the row off `pending`.
	mock.ExpectExec("UPDATE `sub_orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.TransitionSubOrder(context.Background(), 5, models.SubOrderPending, models.SubOrderProcessing, nil)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}
