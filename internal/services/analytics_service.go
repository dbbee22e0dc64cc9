package services

import (
	"context"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
)

// AnalyticsService is pure read-side aggregation; every request recomputes
// from the base tables.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	shops     repository.ShopRepository
}

func NewAnalyticsService(analytics repository.AnalyticsRepository, shops repository.ShopRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, shops: shops}
}

func (s *AnalyticsService) VendorStats(ctx context.Context, vendorID uint) (*models.VendorStats, error) {
	shop, err := s.shops.FindByOwner(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, models.ErrShopNotFound
	}
	return s.analytics.VendorStats(ctx, shop.ID)
}

func (s *AnalyticsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	return s.analytics.AdminStats(ctx)
}
