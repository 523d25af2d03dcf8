// Package cache provides a Redis-backed read-through cache for statistics
// responses. Cache failures degrade to direct database reads and are never
// surfaced to callers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saviladev/PhishingDetector/internal/logger"
	"github.com/saviladev/PhishingDetector/internal/models"
)

const connectionTimeout = 2 * time.Second

// NewClient creates a Redis client and verifies the connection.
func NewClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", pingErr)
	}

	return client, nil
}

// StatsCache caches computed statistics keyed by date range.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStatsCache creates a statistics cache. A nil client disables caching.
func NewStatsCache(client *redis.Client, ttl time.Duration, log logger.Logger) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// Enabled reports whether a Redis client is configured.
func (c *StatsCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping verifies the Redis connection.
func (c *StatsCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return errors.New("stats cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Key builds the cache key for a date range. Unbounded ranges share the
// "all" key.
func (c *StatsCache) Key(startDate, endDate *time.Time) string {
	start := "all"
	end := "all"
	if startDate != nil {
		start = startDate.Format("2006-01-02")
	}
	if endDate != nil {
		end = endDate.Format("2006-01-02")
	}
	return "phishing-detector:stats:" + start + ":" + end
}

// Get returns cached statistics for the key, or (nil, false) on miss or
// cache failure.
func (c *StatsCache) Get(ctx context.Context, key string) (*models.Statistics, bool) {
	if !c.Enabled() {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Stats cache read failed", logger.String("key", key), logger.Error(err))
		}
		return nil, false
	}

	stats := &models.Statistics{}
	if unmarshalErr := json.Unmarshal(payload, stats); unmarshalErr != nil {
		c.logger.Warn("Stats cache entry corrupt, ignoring",
			logger.String("key", key),
			logger.Error(unmarshalErr),
		)
		return nil, false
	}

	return stats, true
}

// Set stores statistics under the key with the configured TTL. Failures are
// logged and dropped.
func (c *StatsCache) Set(ctx context.Context, key string, stats *models.Statistics) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("Stats cache encode failed", logger.Error(err))
		return
	}

	if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
		c.logger.Warn("Stats cache write failed", logger.String("key", key), logger.Error(setErr))
	}
}

// Invalidate drops all cached statistics. Called after writes that change
// the aggregates.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, "phishing-detector:stats:*", 0).Iterator()
	for iter.Next(ctx) {
		if delErr := c.client.Del(ctx, iter.Val()).Err(); delErr != nil {
			c.logger.Warn("Stats cache invalidation failed", logger.Error(delErr))
			return
		}
	}
	if iterErr := iter.Err(); iterErr != nil {
		c.logger.Warn("Stats cache scan failed", logger.Error(iterErr))
	}
}
