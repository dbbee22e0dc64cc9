package mysql

import (
	"context"
	"errors"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) CreateVendor(ctx context.Context, user *models.User, shop *models.Shop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		shop.OwnerID = user.ID
		return tx.Create(shop).Error
	})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) AddToWishlist(ctx context.Context, userID, productID uint) error {
	user := models.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).
		Association("Wishlist").
		Append(&models.Product{ID: productID})
}

func (r *userRepo) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	user := models.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).
		Association("Wishlist").
		Delete(&models.Product{ID: productID})
}

func (r *userRepo) Wishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	var products []models.Product
	user := models.User{ID: userID}
	if err := r.db.WithContext(ctx).Model(&user).Association("Wishlist").Find(&products); err != nil {
		return nil, err
	}
	return products, nil
}
