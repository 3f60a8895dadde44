package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"

	"github.com/redis/go-redis/v9"
)

const DASHBOARD_STATS_KEY = "gtm:dashboard-stats"

// StatsCache holds the last computed dashboard statistics in Redis. A nil
// *StatsCache, or one built without a Redis URI, is disabled: Get always
// misses and Set/Invalidate do nothing.
//
// gtmctl seed invalidates the entry. Any other write to the store shows up
// in the statistics only once the TTL expires.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(redisURI string, ttl time.Duration) (*StatsCache, error) {
	if redisURI == "" {
		return &StatsCache{}, nil
	}

	opts, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, fmt.Errorf("[Redis] invalid URI: %w", err)
	}

	return NewWithClient(redis.NewClient(opts), ttl), nil
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func (c *StatsCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *StatsCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get reports ok=false on a miss. A decode failure is returned as an error
// alongside a miss.
func (c *StatsCache) Get(ctx context.Context) (schemas.DashboardStats, bool, error) {
	if !c.Enabled() {
		return schemas.DashboardStats{}, false, nil
	}

	raw, err := c.rdb.Get(ctx, DASHBOARD_STATS_KEY).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return schemas.DashboardStats{}, false, nil
		}
		return schemas.DashboardStats{}, false, err
	}

	stats := schemas.DashboardStats{}
	if err := json.Unmarshal(raw, &stats); err != nil {
		return schemas.DashboardStats{}, false, err
	}
	return stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, stats schemas.DashboardStats) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, DASHBOARD_STATS_KEY, raw, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Del(ctx, DASHBOARD_STATS_KEY).Err()
}

func (c *StatsCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
