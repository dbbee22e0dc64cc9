package mysql

import (
	"context"
	"errors"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"gorm.io/gorm"
)

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *shopRepo) FindByOwner(ctx context.Context, ownerID uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *shopRepo) Update(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}
