package models

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrShopNotFound      = errors.New("shop not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceChanged      = errors.New("product price changed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrForbidden         = errors.New("operation not permitted")
	ErrInvalidTransition = errors.New("illegal status transition")
)
