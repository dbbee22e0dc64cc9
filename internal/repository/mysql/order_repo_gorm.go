package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Place runs the whole placement as one transaction: every stock reservation
// is a conditional decrement that also asserts the price the totals were
// computed from, so a concurrent checkout cannot oversell and a concurrent
// price edit cannot be billed stale; the losing request affects zero rows
// and rolls back.
func (r *orderRepo) Place(ctx context.Context, order *models.Order, event *models.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ? AND price = ?", item.ProductID, item.Quantity, item.Price).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return reservationError(tx, item)
			}
		}

		// Cascading create persists items and sub-orders with the parent.
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		event.AggregateID = order.ID
		return tx.Create(event).Error
	})
}

// reservationError explains a failed conditional decrement. The row is
// re-read inside the same transaction so the reported reason matches the
// state the decrement actually saw.
func reservationError(tx *gorm.DB, item models.OrderItem) error {
	var p models.Product
	err := tx.Select("stock", "price").First(&p, item.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", item.ProductID, models.ErrProductNotFound)
	}
	if err != nil {
		return err
	}
	if p.Stock < item.Quantity {
		return fmt.Errorf("product %d: %w", item.ProductID, models.ErrInsufficientStock)
	}
	return fmt.Errorf("product %d: %w", item.ProductID, models.ErrPriceChanged)
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubOrders.Items").
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubOrders.Items").
		Where("idempotency_key = ?", key).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubOrders.Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindSubOrder(ctx context.Context, id uint) (*models.SubOrder, error) {
	var so models.SubOrder
	err := r.db.WithContext(ctx).Preload("Items").First(&so, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &so, nil
}

func (r *orderRepo) ListSubOrdersByShop(ctx context.Context, shopID uint) ([]models.SubOrder, error) {
	var subs []models.SubOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// TransitionSubOrder applies the status change and reprojects the parent in
// one transaction. The WHERE status = from clause loses to a concurrent
// transition instead of clobbering it.
func (r *orderRepo) TransitionSubOrder(ctx context.Context, subOrderID uint, from, to models.SubOrderStatus, event *models.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SubOrder{}).
			Where("id = ? AND status = ?", subOrderID, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInvalidTransition
		}

		var sub models.SubOrder
		if err := tx.First(&sub, subOrderID).Error; err != nil {
			return err
		}

		var statuses []models.SubOrderStatus
		if err := tx.Model(&models.SubOrder{}).
			Where("order_id = ?", sub.OrderID).
			Pluck("status", &statuses).Error; err != nil {
			return err
		}

		projected := models.ProjectOrderStatus(statuses)
		if err := tx.Model(&models.Order{}).
			Where("id = ?", sub.OrderID).
			Update("status", projected).Error; err != nil {
			return err
		}

		if event != nil {
			event.AggregateID = sub.OrderID
			return tx.Create(event).Error
		}
		return nil
	})
}
