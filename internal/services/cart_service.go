package services

import (
	"context"
	"fmt"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// SetItem stores the requested quantity for a product, replacing any
// previous quantity.
func (s *CartService) SetItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return models.ErrProductNotFound
	}

	return s.carts.SetItem(ctx, userID, productID, quantity)
}

// Items joins the stored cart with live product rows. Lines whose product
// has been deleted since being added are dropped from the view.
func (s *CartService) Items(ctx context.Context, userID uint) ([]models.CartEntry, error) {
	stored, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return []models.CartEntry{}, nil
	}

	ids := make([]uint, 0, len(stored))
	for id := range stored {
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CartEntry, 0, len(products))
	for _, p := range products {
		qty := stored[p.ID]
		entries = append(entries, models.CartEntry{
			Product:  p,
			Quantity: qty,
			Subtotal: p.Price * float64(qty),
		})
	}
	return entries, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	return s.carts.RemoveItem(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.carts.Clear(ctx, userID)
}
