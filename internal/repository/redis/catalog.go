package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

const catalogKey = "storefront:catalog:v1"

// CatalogCache implements repository.CatalogCache using Redis. The whole
// catalog is stored as one JSON value with a TTL.
type CatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCatalogCache creates a new Redis-backed catalog cache.
func NewCatalogCache(client redis.Cmdable, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached catalog, or false on a miss.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Product, bool, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get catalog: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return products, true, nil
}

// Set stores the catalog snapshot.
func (c *CatalogCache) Set(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalog: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("redis del catalog: %w", err)
	}
	return nil
}
