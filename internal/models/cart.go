package models

// CartEntry joins a stored cart line with live product data for display.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}
