package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mbeaumont/assets-ms-go/internal/logger"
	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	log.Println("initialising redis cache...")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetAssetDetails(ctx context.Context, ref model.AssetRef) ([]byte, error) {
	val, err := c.client.Get(ctx, getCacheKey(ref, false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagAssetDetails(ctx context.Context, ref model.AssetRef) (string, error) {
	val, err := c.client.Get(ctx, getCacheKey(ref, true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetAssetDetails(ctx context.Context, ref model.AssetRef, data []byte, validUntil time.Time) {
	if err := c.client.Set(ctx, getCacheKey(ref, false), data, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for asset %q: %v", ref, err)
	}
}

func (c *Cache) SetEtagAssetDetails(ctx context.Context, ref model.AssetRef, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, getCacheKey(ref, true), etag, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for asset %q etag: %v", ref, err)
	}
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, ref model.AssetRef) error {
	if err := c.client.Del(ctx, getCacheKey(ref, false)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagAssetDetails(ctx context.Context, ref model.AssetRef) error {
	if err := c.client.Del(ctx, getCacheKey(ref, true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(ref model.AssetRef, etag bool) string {
	if etag {
		return "asset:etag:" + ref.String()
	}
	return "asset:" + ref.String()
}
