package category

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// Cache keys; only these two query shapes are ever cached.
const (
	cacheKeyVisible = "quizcategory:visible"
	cacheKeyAll     = "quizcategory:all"
)

// ListCache is a Redis-backed cache for the two category list reads. Entries
// expire after the TTL and are invalidated on every category write.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ListStore = (*ListCache)(nil)

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

func (c *ListCache) Get(ctx context.Context, key string) ([]Category, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *ListCache) Set(ctx context.Context, key string, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops both cached lists.
func (c *ListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, cacheKeyVisible, cacheKeyAll).Err()
}
