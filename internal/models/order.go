package models

import "time"

// ShippingAddress is snapshotted onto the order at checkout.
type ShippingAddress struct {
	FullName   string `gorm:"type:varchar(100)" json:"full_name" validate:"required"`
	Street     string `gorm:"type:varchar(200)" json:"street" validate:"required"`
	City       string `gorm:"type:varchar(100)" json:"city" validate:"required"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code" validate:"required"`
	Country    string `gorm:"type:varchar(100)" json:"country" validate:"required"`
	Phone      string `gorm:"type:varchar(30)" json:"phone"`
}

// Order is the customer-facing aggregate for one checkout across vendors.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNo         string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_no"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	IdempotencyKey  *string         `gorm:"type:varchar(100);uniqueIndex" json:"-"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	SubOrders       []SubOrder      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"sub_orders"`
	TotalAmount     float64         `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(30);default:'pending'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a flattened line item on the parent order.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Name      string  `gorm:"type:varchar(200)" json:"name"`
	Price     float64 `gorm:"type:decimal(10,2)" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// SubOrder is the vendor-facing fragment of a parent order.
type SubOrder struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	ShopID      uint           `gorm:"index;not null" json:"shop_id"`
	Items       []SubOrderItem `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64        `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status      SubOrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (SubOrder) TableName() string {
	return "sub_orders"
}

// SubOrderItem carries a name/price snapshot so later product edits
// do not rewrite order history.
type SubOrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	SubOrderID uint    `gorm:"index;not null" json:"sub_order_id"`
	ProductID  uint    `gorm:"index;not null" json:"product_id"`
	Name       string  `gorm:"type:varchar(200)" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2)" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

func (SubOrderItem) TableName() string {
	return "sub_order_items"
}
