package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsecheck/internal/model"
)

// CatalogCache holds a JSON snapshot of the active item catalog
type CatalogCache interface {
	Get(ctx context.Context) ([]model.Item, error)
	Set(ctx context.Context, items []model.Item) error
	Invalidate(ctx context.Context) error
}

type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new catalog cache
func NewCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &catalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *catalogCache) key() string {
	return "catalog:active"
}

// Get returns nil, nil on a miss
func (c *catalogCache) Get(ctx context.Context) ([]model.Item, error) {
	data, err := c.client.Get(ctx, c.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *catalogCache) Set(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), data, c.ttl).Err()
}

func (c *catalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}
