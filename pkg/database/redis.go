package database

import (
	"context"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis and verifies the connection with a ping.
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
