package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialpro-hub/content-service/internal/models"
)

const (
	// L1 cache (in-memory) TTL
	L1CacheTTL = 30 * time.Second

	// L2 cache (Redis) TTL
	L2CacheTTL = 60 * time.Second

	// Redis key prefix for dashboard summaries
	DashboardKeyPrefix = "content:dashboard:"
)

// L1CacheEntry represents an entry in the L1 cache
type L1CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// DashboardCache provides multi-layer caching for per-tenant dashboard
// summaries. Writes to any of the tenant's content invalidate its entry.
type DashboardCache struct {
	// L1 cache (in-memory)
	l1Cache sync.Map

	// L2 cache (Redis) - optional
	redisClient *redis.Client

	// Whether Redis is available
	redisEnabled bool
}

// NewDashboardCache creates a new dashboard cache
func NewDashboardCache(redisClient *redis.Client) *DashboardCache {
	cache := &DashboardCache{
		redisClient:  redisClient,
		redisEnabled: redisClient != nil,
	}

	// Start background cleanup for L1 cache
	go cache.cleanupL1Cache()

	return cache
}

// NewDashboardCacheWithoutRedis creates a cache without Redis
func NewDashboardCacheWithoutRedis() *DashboardCache {
	cache := &DashboardCache{
		redisEnabled: false,
	}

	go cache.cleanupL1Cache()

	return cache
}

// Get retrieves a tenant's summary from cache (L1 first, then L2)
func (c *DashboardCache) Get(tenantID string) (*models.DashboardSummary, bool) {
	key := c.summaryKey(tenantID)

	// Try L1 cache first
	if entry, ok := c.l1Cache.Load(key); ok {
		l1Entry := entry.(L1CacheEntry)
		if time.Now().Before(l1Entry.ExpiresAt) {
			if summary, ok := l1Entry.Data.(*models.DashboardSummary); ok {
				return summary, true
			}
		}
		// Expired, remove from L1
		c.l1Cache.Delete(key)
	}

	// Try L2 cache (Redis)
	if c.redisEnabled {
		if summary, ok := c.getFromRedis(key); ok {
			// Populate L1 cache
			c.setL1Cache(key, summary)
			return summary, true
		}
	}

	return nil, false
}

// Set stores a tenant's summary in both L1 and L2 caches
func (c *DashboardCache) Set(tenantID string, summary *models.DashboardSummary) {
	key := c.summaryKey(tenantID)

	// Set in L1 cache
	c.setL1Cache(key, summary)

	// Set in L2 cache (Redis)
	if c.redisEnabled {
		c.setToRedis(key, summary, L2CacheTTL)
	}
}

// Invalidate drops a tenant's cached summary from both layers
func (c *DashboardCache) Invalidate(tenantID string) {
	key := c.summaryKey(tenantID)
	c.l1Cache.Delete(key)

	if c.redisEnabled {
		ctx := context.Background()
		c.redisClient.Del(ctx, key)
	}
}

// InvalidateAll clears every cached summary
func (c *DashboardCache) InvalidateAll() {
	c.l1Cache.Range(func(key, _ interface{}) bool {
		c.l1Cache.Delete(key)
		return true
	})

	if c.redisEnabled {
		ctx := context.Background()
		keys, err := c.redisClient.Keys(ctx, DashboardKeyPrefix+"*").Result()
		if err == nil && len(keys) > 0 {
			c.redisClient.Del(ctx, keys...)
		}
	}
}

// setL1Cache sets a value in the L1 cache
func (c *DashboardCache) setL1Cache(key string, data interface{}) {
	c.l1Cache.Store(key, L1CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(L1CacheTTL),
	})
}

// summaryKey generates a cache key for a tenant
func (c *DashboardCache) summaryKey(tenantID string) string {
	return fmt.Sprintf("%s%s", DashboardKeyPrefix, tenantID)
}

// getFromRedis retrieves a summary from Redis
func (c *DashboardCache) getFromRedis(key string) (*models.DashboardSummary, bool) {
	ctx := context.Background()
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var summary models.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

// setToRedis stores a summary in Redis
func (c *DashboardCache) setToRedis(key string, summary *models.DashboardSummary, ttl time.Duration) {
	ctx := context.Background()
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.redisClient.Set(ctx, key, data, ttl)
}

// cleanupL1Cache periodically removes expired entries from L1 cache
func (c *DashboardCache) cleanupL1Cache() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.l1Cache.Range(func(key, value interface{}) bool {
			entry := value.(L1CacheEntry)
			if now.After(entry.ExpiresAt) {
				c.l1Cache.Delete(key)
			}
			return true
		})
	}
}
