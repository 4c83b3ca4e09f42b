// Package cache provides Redis-backed caching for computed reports.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/redis/go-redis/v9"
)

var _ ledgerapp.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache implements ReportCache using Redis. Reports are stored as
// JSON under a shared key prefix so multiple instances serve the same cache.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "cobranza:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis
// client, useful for testing or sharing a client across components
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "cobranza:"
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// GetAgingReport returns the cached report for the key, or (nil, nil) on a
// cache miss
func (c *RedisReportCache) GetAgingReport(ctx context.Context, key string) (*ledgerapp.AgingReport, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report ledgerapp.AgingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// SetAgingReport stores the report under the key with a TTL
func (c *RedisReportCache) SetAgingReport(ctx context.Context, key string, report *ledgerapp.AgingReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
