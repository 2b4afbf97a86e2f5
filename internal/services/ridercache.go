package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/monishaRema/zep-shift-server/internal/models"
)

const availableRidersTTL = 30 * time.Second

// RiderCache keeps short-lived, region-keyed snapshots of available
// riders in Redis. A nil client disables caching; every method is
// best-effort and never fails the request path.
type RiderCache struct {
	client *redis.Client
}

// NewRiderCache connects to REDIS_URL. An empty URL returns a disabled
// cache rather than an error.
func NewRiderCache(ctx context.Context) (*RiderCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return &RiderCache{}, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RiderCache{client: client}, nil
}

func availableKey(region string) string {
	return fmt.Sprintf("riders:available:%s", region)
}

// GetAvailable returns the cached active riders for a region, or
// (nil, false) on miss or when caching is disabled.
func (c *RiderCache) GetAvailable(ctx context.Context, region string) ([]models.Rider, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, availableKey(region)).Result()
	if err != nil {
		return nil, false
	}

	var riders []models.Rider
	if err := json.Unmarshal([]byte(data), &riders); err != nil {
		return nil, false
	}
	return riders, true
}

// SetAvailable stores the region snapshot with a short TTL.
func (c *RiderCache) SetAvailable(ctx context.Context, region string, riders []models.Rider) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(riders)
	if err != nil {
		return
	}
	c.client.Set(ctx, availableKey(region), data, availableRidersTTL)
}

// InvalidateRegion drops the snapshot after a rider status write.
func (c *RiderCache) InvalidateRegion(ctx context.Context, region string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, availableKey(region))
}
