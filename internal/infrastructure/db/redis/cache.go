package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

const categoriesKey = "catalog:categories"

// CategoryCache stores the full category list as a single JSON value with a
// TTL. The category service invalidates it on every mutation; a read failure
// is never fatal, callers fall through to the store.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache wraps the given Redis client. A non-positive ttl defaults
// to one hour.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// GetAll returns the cached category list, or (nil, nil) on a cache miss.
func (c *CategoryCache) GetAll(ctx context.Context) ([]*domain.Category, error) {
	payload, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("category cache get: %w", err)
	}

	var categories []*domain.Category
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, fmt.Errorf("category cache decode: %w", err)
	}
	return categories, nil
}

// SetAll replaces the cached category list.
func (c *CategoryCache) SetAll(ctx context.Context, categories []*domain.Category) error {
	payload, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("category cache encode: %w", err)
	}
	return c.client.Set(ctx, categoriesKey, payload, c.ttl).Err()
}

// Invalidate drops the cached list so the next read repopulates it.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoriesKey).Err()
}
