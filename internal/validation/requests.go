package validation

import "github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

// RegisterRequest creates a customer or vendor account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=customer vendor"`
	ShopName string `json:"shop_name" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Tags        string  `json:"tags" validate:"max=500"`
}

type RateProductRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type CartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// OrderLine is one product/quantity pair of a checkout request.
type OrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the checkout body. The idempotency key travels in
// the Idempotency-Key header, not the body.
type CreateOrderRequest struct {
	Products        []OrderLine            `json:"products" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type UpdateShopRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}
