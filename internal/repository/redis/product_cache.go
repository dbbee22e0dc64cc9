package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
)

const productCacheTTL = 5 * time.Minute

type productCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) repository.ProductCache {
	return &productCache{rdb: rdb}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *productCache) Get(ctx context.Context, id uint) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *productCache) Set(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, productCacheTTL).Err()
}

func (c *productCache) Invalidate(ctx context.Context, id uint) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}
