package feedcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"connectly/internal/entity"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores rendered feed pages keyed per viewer and page
// number. Entries expire on their own; nothing invalidates them early,
// so a page may be up to one TTL stale.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func pageKey(viewerID string, page int) string {
	return fmt.Sprintf("feed:user:%s:page:%d", viewerID, page)
}

// GetPage returns the cached page for the viewer, or nil on a miss.
func (c *RedisCache) GetPage(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error) {
	data, err := c.client.Get(ctx, pageKey(viewerID, page)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("feedcache: get: %w", err)
	}

	var feedPage entity.FeedPage
	if err := json.Unmarshal(data, &feedPage); err != nil {
		return nil, fmt.Errorf("feedcache: decode: %w", err)
	}
	return &feedPage, nil
}

// SetPage stores the page for the viewer under the configured TTL.
func (c *RedisCache) SetPage(ctx context.Context, viewerID string, page int, feedPage *entity.FeedPage) error {
	data, err := json.Marshal(feedPage)
	if err != nil {
		return fmt.Errorf("feedcache: encode: %w", err)
	}
	if err := c.client.Set(ctx, pageKey(viewerID, page), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("feedcache: set: %w", err)
	}
	return nil
}
