package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
)

const keyPrefix = "catalog:"

// RedisCatalogCache never surfaces redis failures; a miss falls through to the database.
type RedisCatalogCache struct {
	rdb KV
	ttl time.Duration
	log *logger.Logger
}

func NewRedisCatalogCache(rdb KV, ttl time.Duration, baseLog *logger.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl, log: baseLog.With("component", "catalog_cache")}
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("catalog cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return b, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache set failed", "key", key, "error", err)
	}
}
