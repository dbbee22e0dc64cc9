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

func TestCartSetItem(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	products := new(mocks.MockProductRepository)
	svc := NewCartService(carts, products)

	products.On("FindByID", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	carts.On("SetItem", mock.Anything, uint(7), uint(1), 3).Return(nil)

	require.NoError(t, svc.SetItem(context.Background(), 7, 1, 3))
	carts.AssertExpectations(t)
}

func TestCartSetItemUnknownProduct(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	products := new(mocks.MockProductRepository)
	svc := NewCartService(carts, products)

	products.On("FindByID", mock.Anything, uint(9)).Return(nil, nil)

	err := svc.SetItem(context.Background(), 7, 9, 1)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	carts.AssertNotCalled(t, "SetItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartSetItemRejectsNonPositiveQuantity(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	products := new(mocks.MockProductRepository)
	svc := NewCartService(carts, products)

	assert.Error(t, svc.SetItem(context.Background(), 7, 1, 0))
	assert.Error(t, svc.SetItem(context.Background(), 7, 1, -2))
}

func TestCartItemsJoinsLiveProducts(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	products := new(mocks.MockProductRepository)
	svc := NewCartService(carts, products)

	carts.On("Items", mock.Anything, uint(7)).Return(map[uint]int{1: 2, 9: 1}, nil)
	// Product 9 was deleted after being added to the cart.
	products.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]models.Product{{ID: 1, Name: "Mug", Price: 10}}, nil)

	entries, err := svc.Items(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].Product.ID)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 20.0, entries[0].Subtotal)
}

func TestCartItemsEmpty(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	products := new(mocks.MockProductRepository)
	svc := NewCartService(carts, products)

	carts.On("Items", mock.Anything, uint(7)).Return(map[uint]int{}, nil)

	entries, err := svc.Items(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
	products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}
