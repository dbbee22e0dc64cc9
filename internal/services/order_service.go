package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService implements checkout and the sub-order fulfillment lifecycle.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	shops    repository.ShopRepository
	users    repository.UserRepository
	carts    repository.CartRepository
	audit    repository.AuditLogger
	logger   *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	shops repository.ShopRepository,
	users repository.UserRepository,
	carts repository.CartRepository,
	audit repository.AuditLogger,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		shops:    shops,
		users:    users,
		carts:    carts,
		audit:    audit,
		logger:   logger,
	}
}

// PlaceOrder validates the request, then reserves stock, fans the order out
// into per-vendor sub-orders and records the order.placed outbox event in a
// single repository transaction. The returned bool reports an idempotent
// replay.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, lines []models.Line, addr models.ShippingAddress, idempotencyKey string) (*models.Order, bool, error) {
	if idempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, models.ErrUserNotFound
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, false, err
	}

	order, err := models.BuildPlacement(userID, products, lines, addr)
	if err != nil {
		return nil, false, err
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	event, err := orderPlacedEvent(order, user)
	if err != nil {
		return nil, false, err
	}

	if err := s.orders.Place(ctx, order, event); err != nil {
		// A concurrent request with the same key may have won the unique
		// index race; surface its order as a replay.
		if idempotencyKey != "" {
			if existing, ferr := s.orders.FindByIdempotencyKey(ctx, idempotencyKey); ferr == nil && existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("cart clear after checkout failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	s.recordAudit(ctx, "order.placed", order.ID, map[string]interface{}{
		"order_no":     order.OrderNo,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"sub_orders":   len(order.SubOrders),
	})

	s.logger.Info("order placed",
		zap.String("order_no", order.OrderNo),
		zap.Uint("user_id", userID),
		zap.Float64("total", order.TotalAmount),
		zap.Int("vendors", len(order.SubOrders)))
	return order, false, nil
}

// UpdateSubOrderStatus applies one FSM transition on behalf of the owning
// vendor or an admin.
func (s *OrderService) UpdateSubOrderStatus(ctx context.Context, requesterID uint, role string, subOrderID uint, target models.SubOrderStatus) (*models.SubOrder, error) {
	if !models.ValidSubOrderStatus(target) {
		return nil, fmt.Errorf("status %q: %w", target, models.ErrInvalidTransition)
	}

	sub, err := s.orders.FindSubOrder(ctx, subOrderID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, models.ErrOrderNotFound
	}

	if role != models.RoleAdmin {
		shop, err := s.shops.FindByOwner(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if shop == nil || shop.ID != sub.ShopID {
			return nil, models.ErrForbidden
		}
	}

	if !models.CanTransition(sub.Status, target) {
		return nil, fmt.Errorf("%s -> %s: %w", sub.Status, target, models.ErrInvalidTransition)
	}

	order, err := s.orders.FindByID(ctx, sub.OrderID)
	if err != nil {
		return nil, err
	}
	orderNo := ""
	if order != nil {
		orderNo = order.OrderNo
	}

	event, err := statusChangedEvent(orderNo, sub, target)
	if err != nil {
		return nil, err
	}

	if err := s.orders.TransitionSubOrder(ctx, subOrderID, sub.Status, target, event); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "order.status_changed", sub.OrderID, map[string]interface{}{
		"sub_order_id": subOrderID,
		"from":         string(sub.Status),
		"to":           string(target),
	})

	return s.orders.FindSubOrder(ctx, subOrderID)
}

func (s *OrderService) GetOrder(ctx context.Context, requesterID uint, role string, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.ErrOrderNotFound
	}
	if order.UserID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// VendorOrders lists the sub-orders addressed to the requesting vendor's shop.
func (s *OrderService) VendorOrders(ctx context.Context, vendorID uint) ([]models.SubOrder, error) {
	shop, err := s.shops.FindByOwner(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, models.ErrShopNotFound
	}
	return s.orders.ListSubOrdersByShop(ctx, shop.ID)
}

func (s *OrderService) recordAudit(ctx context.Context, action string, entityID uint, data map[string]interface{}) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, action, entityID, data); err != nil {
		s.logger.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}

func orderPlacedEvent(order *models.Order, user *models.User) (*models.OutboxEvent, error) {
	payload := models.OrderPlacedPayload{
		OrderNo:     order.OrderNo,
		UserID:      order.UserID,
		Email:       user.Email,
		Name:        user.Name,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		VendorCount: len(order.SubOrders),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &models.OutboxEvent{
		EventID: uuid.NewString(),
		Type:    models.EventOrderPlaced,
		Payload: string(body),
		Status:  models.OutboxPending,
	}, nil
}

func statusChangedEvent(orderNo string, sub *models.SubOrder, target models.SubOrderStatus) (*models.OutboxEvent, error) {
	payload := models.OrderStatusChangedPayload{
		OrderNo:    orderNo,
		SubOrderID: sub.ID,
		ShopID:     sub.ShopID,
		From:       string(sub.Status),
		To:         string(target),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &models.OutboxEvent{
		EventID: uuid.NewString(),
		Type:    models.EventOrderStatusChanged,
		Payload: string(body),
		Status:  models.OutboxPending,
	}, nil
}
