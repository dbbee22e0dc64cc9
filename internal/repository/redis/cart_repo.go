package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
)

// cartRepo keeps each cart as a Redis hash of productID -> quantity.
// Carts are ephemeral: they exist only between add-to-cart and checkout.
type cartRepo struct {
	rdb *redis.Client
}

func NewCartRepository(rdb *redis.Client) repository.CartRepository {
	return &cartRepo{rdb: rdb}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (r *cartRepo) SetItem(ctx context.Context, userID, productID uint, quantity int) error {
	field := strconv.FormatUint(uint64(productID), 10)
	return r.rdb.HSet(ctx, cartKey(userID), field, quantity).Err()
}

func (r *cartRepo) Items(ctx context.Context, userID uint) (map[uint]int, error) {
	val, err := r.rdb.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	items := make(map[uint]int, len(val))
	for k, v := range val {
		productID, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		items[uint(productID)] = quantity
	}
	return items, nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, userID, productID uint) error {
	field := strconv.FormatUint(uint64(productID), 10)
	return r.rdb.HDel(ctx, cartKey(userID), field).Err()
}

func (r *cartRepo) Clear(ctx context.Context, userID uint) error {
	return r.rdb.Del(ctx, cartKey(userID)).Err()
}
