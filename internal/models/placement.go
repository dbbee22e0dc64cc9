package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Line is one (product, quantity) pair of a checkout request.
type Line struct {
	ProductID uint
	Quantity  int
}

// BuildPlacement turns a validated checkout into a parent order with one
// sub-order per shop. products must contain every referenced product; the
// stock check here is advisory; the authoritative guard is the conditional
// decrement executed in the same transaction that persists the order.
func BuildPlacement(userID uint, products []Product, lines []Line, addr ShippingAddress) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	byID := make(map[uint]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &Order{
		OrderNo:         uuid.NewString(),
		UserID:          userID,
		ShippingAddress: addr,
		Status:          OrderPending,
	}

	// Bucket lines per shop in first-seen order so sub-order layout is
	// deterministic for a given request.
	buckets := make(map[uint]*SubOrder)
	var shopOrder []uint

	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrProductNotFound)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: quantity must be positive", line.ProductID)
		}
		if line.Quantity > p.Stock {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrInsufficientStock)
		}

		lineTotal := p.Price * float64(line.Quantity)
		order.TotalAmount += lineTotal
		order.Items = append(order.Items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})

		bucket, ok := buckets[p.ShopID]
		if !ok {
			bucket = &SubOrder{ShopID: p.ShopID, Status: SubOrderPending}
			buckets[p.ShopID] = bucket
			shopOrder = append(shopOrder, p.ShopID)
		}
		bucket.Items = append(bucket.Items, SubOrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
		bucket.TotalAmount += lineTotal
	}

	for _, shopID := range shopOrder {
		order.SubOrders = append(order.SubOrders, *buckets[shopID])
	}

	return order, nil
}
