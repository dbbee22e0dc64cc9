package services

import (
	"context"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/search"

	"go.uber.org/zap"
)

// CatalogService owns products, shops and wishlists. The search index and
// product cache are both optional; nil disables them.
type CatalogService struct {
	products repository.ProductRepository
	shops    repository.ShopRepository
	users    repository.UserRepository
	index    search.ProductIndex
	cache    repository.ProductCache
	logger   *zap.Logger
}

func NewCatalogService(
	products repository.ProductRepository,
	shops repository.ShopRepository,
	users repository.UserRepository,
	index search.ProductIndex,
	cache repository.ProductCache,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		shops:    shops,
		users:    users,
		index:    index,
		cache:    cache,
		logger:   logger,
	}
}

// ProductInput carries create/update fields from the handler.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Tags        string
}

// List resolves the text query through Elasticsearch when available and
// falls back to LIKE filtering on any search failure.
func (s *CatalogService) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	if filter.Query != "" && s.index != nil {
		limit := filter.PageSize * 5
		if limit <= 0 {
			limit = 100
		}
		ids, err := s.index.Search(ctx, filter.Query, limit)
		if err != nil {
			s.logger.Warn("search index unavailable, falling back to SQL", zap.Error(err))
		} else {
			if len(ids) == 0 {
				return []models.Product{}, 0, nil
			}
			filter.IDs = ids
			filter.Query = ""
		}
	}
	return s.products.List(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, models.ErrProductNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Debug("product cache set failed", zap.Error(err))
		}
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, vendorID uint, input ProductInput) (*models.Product, error) {
	shop, err := s.shops.FindByOwner(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, models.ErrShopNotFound
	}

	product := &models.Product{
		ShopID:      shop.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Tags:        input.Tags,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.reindex(ctx, product)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, requesterID uint, role string, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Tags = input.Tags

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	s.reindex(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, requesterID uint, role string, id uint) error {
	product, err := s.ownedProduct(ctx, requesterID, role, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, product.ID); err != nil {
		return err
	}

	s.invalidate(ctx, product.ID)
	if s.index != nil {
		if err := s.index.Delete(ctx, product.ID); err != nil {
			s.logger.Warn("search de-index failed", zap.Uint("product_id", product.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *CatalogService) RateProduct(ctx context.Context, id uint, score int) error {
	if err := s.products.AddRating(ctx, id, score); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) Wishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	return s.users.Wishlist(ctx, userID)
}

func (s *CatalogService) AddToWishlist(ctx context.Context, userID, productID uint) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return models.ErrProductNotFound
	}
	return s.users.AddToWishlist(ctx, userID, productID)
}

func (s *CatalogService) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return s.users.RemoveFromWishlist(ctx, userID, productID)
}

// ShopProfile is the public shop view.
type ShopProfile struct {
	Shop         models.Shop `json:"shop"`
	ProductCount int64       `json:"product_count"`
}

func (s *CatalogService) GetShop(ctx context.Context, id uint) (*ShopProfile, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, models.ErrShopNotFound
	}

	_, total, err := s.products.List(ctx, repository.ProductFilter{ShopID: id, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	return &ShopProfile{Shop: *shop, ProductCount: total}, nil
}

func (s *CatalogService) UpdateShop(ctx context.Context, ownerID uint, name, description string) (*models.Shop, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, models.ErrShopNotFound
	}

	if name != "" {
		shop.Name = name
	}
	if description != "" {
		shop.Description = description
	}
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ownedProduct loads a product and enforces vendor ownership; admins may
// touch any product.
func (s *CatalogService) ownedProduct(ctx context.Context, requesterID uint, role string, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, models.ErrProductNotFound
	}
	if role == models.RoleAdmin {
		return product, nil
	}

	shop, err := s.shops.FindByOwner(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.ID != product.ShopID {
		return nil, models.ErrForbidden
	}
	return product, nil
}

func (s *CatalogService) reindex(ctx context.Context, product *models.Product) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, product); err != nil {
		s.logger.Warn("search index failed", zap.Uint("product_id", product.ID), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Debug("product cache invalidate failed", zap.Error(err))
	}
}
