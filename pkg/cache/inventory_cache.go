package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// InventoryCacheTTL bounds staleness of the cached list; every write
	// invalidates the key well before this expires.
	InventoryCacheTTL = 5 * time.Minute

	inventoryListKey = "inventory:items"
)

// CachedItem is the denormalized list read model stored in Redis.
type CachedItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// InventoryCache holds the full inventory list under a single key.
// The store is the source of truth: every mutation deletes the key, and the
// next read (or the worker, on item events) repopulates it from Postgres.
type InventoryCache struct {
	client *RedisClient
}

// NewInventoryCache creates an InventoryCache backed by the given RedisClient.
func NewInventoryCache(r *RedisClient) *InventoryCache {
	return &InventoryCache{client: r}
}

// Get returns the cached item list.
// Returns redis.Nil when the key does not exist or has expired.
func (c *InventoryCache) Get(ctx context.Context) ([]CachedItem, error) {
	data, err := c.client.Client().Get(ctx, inventoryListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var items []CachedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return items, nil
}

// Set replaces the cached item list with a fresh TTL.
func (c *InventoryCache) Set(ctx context.Context, items []CachedItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, inventoryListKey, data, InventoryCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list. Called on every store mutation.
func (c *InventoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, inventoryListKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
