package repository

import (
	"context"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
)

// ProductCache fronts product detail reads. A nil result with nil error
// means cache miss.
type ProductCache interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, id uint) error
}
