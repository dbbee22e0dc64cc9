package models

import "time"

const (
	OutboxPending    = "pending"
	OutboxDispatched = "dispatched"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OutboxEvent is written in the same transaction as the state change it
// describes, then delivered to the broker by the dispatcher.
type OutboxEvent struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EventID      string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"event_id"`
	Type         string     `gorm:"type:varchar(50);index;not null" json:"type"`
	AggregateID  uint       `gorm:"index" json:"aggregate_id"`
	Payload      string     `gorm:"type:text" json:"payload"`
	Status       string     `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

// OrderPlacedPayload is the message body for order.placed events.
type OrderPlacedPayload struct {
	OrderNo     string  `json:"order_no"`
	UserID      uint    `json:"user_id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
	VendorCount int     `json:"vendor_count"`
}

// OrderStatusChangedPayload is the message body for order.status_changed events.
type OrderStatusChangedPayload struct {
	OrderNo    string `json:"order_no"`
	SubOrderID uint   `json:"sub_order_id"`
	ShopID     uint   `json:"shop_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}
