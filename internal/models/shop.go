package models

import "time"

const (
	ShopActive    = "active"
	ShopSuspended = "suspended"
)

// Shop is owned by exactly one vendor user.
type Shop struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"uniqueIndex;not null" json:"owner_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}
