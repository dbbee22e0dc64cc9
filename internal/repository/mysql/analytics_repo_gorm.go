package mysql

import (
	"context"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"gorm.io/gorm"
)

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) repository.AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) VendorStats(ctx context.Context, shopID uint) (*models.VendorStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.VendorStats{
		ShopID:         shopID,
		OrdersByStatus: map[string]int{},
	}

	if err := db.Model(&models.Product{}).
		Where("shop_id = ?", shopID).
		Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.SubOrder{}).
		Where("shop_id = ?", shopID).
		Count(&stats.SubOrderCount).Error; err != nil {
		return nil, err
	}

	row := db.Model(&models.SubOrderItem{}).
		Select("COALESCE(SUM(sub_order_items.quantity), 0)").
		Joins("JOIN sub_orders ON sub_orders.id = sub_order_items.sub_order_id").
		Where("sub_orders.shop_id = ? AND sub_orders.status <> ?", shopID, models.SubOrderCancelled).
		Row()
	if err := row.Scan(&stats.UnitsSold); err != nil {
		return nil, err
	}

	row = db.Model(&models.SubOrder{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("shop_id = ? AND status <> ?", shopID, models.SubOrderCancelled).
		Row()
	if err := row.Scan(&stats.GrossRevenue); err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Cnt    int
	}
	var counts []statusCount
	if err := db.Model(&models.SubOrder{}).
		Select("status, COUNT(*) AS cnt").
		Where("shop_id = ?", shopID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.OrdersByStatus[c.Status] = c.Cnt
	}

	row = db.Model(&models.Product{}).
		Select("COALESCE(SUM(rating_sum), 0), COALESCE(SUM(rating_count), 0)").
		Where("shop_id = ?", shopID).
		Row()
	var ratingSum, ratingCount int64
	if err := row.Scan(&ratingSum, &ratingCount); err != nil {
		return nil, err
	}
	stats.RatedProductCnt = ratingCount
	if ratingCount > 0 {
		stats.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	return stats, nil
}

func (r *analyticsRepo) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.AdminStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.UserCount},
		{&models.Shop{}, &stats.ShopCount},
		{&models.Product{}, &stats.ProductCount},
		{&models.Order{}, &stats.OrderCount},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	row := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", models.OrderCancelled).
		Row()
	if err := row.Scan(&stats.GrossRevenue); err != nil {
		return nil, err
	}

	return stats, nil
}
