package models

// VendorStats is recomputed fully on every request; there is no caching
// or time windowing on the analytics read side.
type VendorStats struct {
	ShopID          uint           `json:"shop_id"`
	ProductCount    int64          `json:"product_count"`
	SubOrderCount   int64          `json:"sub_order_count"`
	UnitsSold       int64          `json:"units_sold"`
	GrossRevenue    float64        `json:"gross_revenue"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	AverageRating   float64        `json:"average_rating"`
	RatedProductCnt int64          `json:"rated_product_count"`
}

type AdminStats struct {
	UserCount    int64   `json:"user_count"`
	ShopCount    int64   `json:"shop_count"`
	ProductCount int64   `json:"product_count"`
	OrderCount   int64   `json:"order_count"`
	GrossRevenue float64 `json:"gross_revenue"`
}
