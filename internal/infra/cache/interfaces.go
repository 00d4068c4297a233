package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// CatalogCache stores encoded catalog records for presentation reads.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

var _ CatalogCache = (*RedisCatalogCache)(nil)

// KV is the subset of redis.Cmdable the cache uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

var _ KV = (*redis.Client)(nil)
