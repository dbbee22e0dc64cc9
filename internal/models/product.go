package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ShopID      uint      `gorm:"index;not null" json:"shop_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Tags        string    `gorm:"type:varchar(255)" json:"tags"`
	RatingSum   int64     `gorm:"default:0" json:"-"`
	RatingCount int64     `gorm:"default:0" json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// AverageRating is the rating aggregate exposed to clients.
func (p *Product) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}
