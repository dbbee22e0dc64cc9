package repository

import (
	"context"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
)

// UserRepository persists users and their wishlists.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// CreateVendor creates the vendor user and their shop in one transaction.
	CreateVendor(ctx context.Context, user *models.User, shop *models.Shop) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	AddToWishlist(ctx context.Context, userID, productID uint) error
	RemoveFromWishlist(ctx context.Context, userID, productID uint) error
	Wishlist(ctx context.Context, userID uint) ([]models.Product, error)
}

// ShopRepository persists vendor shops.
type ShopRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
	FindByOwner(ctx context.Context, ownerID uint) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
}

// ProductFilter parameterizes catalog listing.
type ProductFilter struct {
	Query    string
	ShopID   uint
	Tag      string
	MinPrice float64
	MaxPrice float64
	IDs      []uint
	Sort     string
	Page     int
	PageSize int
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	// AddRating folds one 1-5 score into the rating aggregate atomically.
	AddRating(ctx context.Context, id uint, score int) error
}

// OrderRepository persists orders, sub-orders and their outbox events.
type OrderRepository interface {
	// Place reserves stock for every line item with conditional decrements
	// and persists the order, its sub-orders and the outbox event in a
	// single transaction. Nothing is written if any reservation fails.
	Place(ctx context.Context, order *models.Order, event *models.OutboxEvent) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindSubOrder(ctx context.Context, id uint) (*models.SubOrder, error)
	ListSubOrdersByShop(ctx context.Context, shopID uint) ([]models.SubOrder, error)
	// TransitionSubOrder moves a sub-order from -> to, reprojects the parent
	// status over all siblings and records the outbox event, transactionally.
	// The conditional update doubles as a guard against concurrent transitions.
	TransitionSubOrder(ctx context.Context, subOrderID uint, from, to models.SubOrderStatus, event *models.OutboxEvent) error
}

// CartRepository is the per-user product -> quantity mapping.
type CartRepository interface {
	SetItem(ctx context.Context, userID, productID uint, quantity int) error
	Items(ctx context.Context, userID uint) (map[uint]int, error)
	RemoveItem(ctx context.Context, userID, productID uint) error
	Clear(ctx context.Context, userID uint) error
}

// OutboxRepository feeds the dispatcher.
type OutboxRepository interface {
	PendingEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkDispatched(ctx context.Context, ids []uint) error
}

// AnalyticsRepository is the read-side aggregation over existing tables.
type AnalyticsRepository interface {
	VendorStats(ctx context.Context, shopID uint) (*models.VendorStats, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

// AuditLogger records a best-effort activity trail in the document store.
type AuditLogger interface {
	Record(ctx context.Context, action string, entityID uint, data map[string]interface{}) error
}
