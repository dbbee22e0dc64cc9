package services

import (
	"context"
	"testing"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/mocks"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVendorStatsResolvesShop(t *testing.T) {
	analytics := new(mocks.MockAnalyticsRepository)
	shops := new(mocks.MockShopRepository)
	svc := NewAnalyticsService(analytics, shops)

	shops.On("FindByOwner", mock.Anything, uint(7)).Return(&models.Shop{ID: 10, OwnerID: 7}, nil)
	analytics.On("VendorStats", mock.Anything, uint(10)).
		Return(&models.VendorStats{ShopID: 10, UnitsSold: 42, GrossRevenue: 420}, nil)

	stats, err := svc.VendorStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.UnitsSold)
}

func TestVendorStatsWithoutShop(t *testing.T) {
	analytics := new(mocks.MockAnalyticsRepository)
	shops := new(mocks.MockShopRepository)
	svc := NewAnalyticsService(analytics, shops)

	shops.On("FindByOwner", mock.Anything, uint(7)).Return(nil, nil)

	_, err := svc.VendorStats(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrShopNotFound)
	analytics.AssertNotCalled(t, "VendorStats", mock.Anything, mock.Anything)
}
