// Package rediscache implements the result cache over Redis with a small
// in-process LRU tier in front. Redis is the authoritative cross-process
// store; the LRU keeps memoization working within the process when Redis is
// down and short-circuits repeated lookups of hot questions.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"answer-orchestrator/internal/domain"
)

// Cache stores final answers keyed by the verbatim question text. No TTL is
// set; eviction policy belongs to the external store.
type Cache struct {
	client *redis.Client
	memory *lru.Cache[string, string]
	logger *slog.Logger
}

// New connects to Redis at the given URL and builds the two-tier cache.
func New(redisURL string, memorySize int, logger *slog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), memorySize, logger)
}

// NewWithClient builds the cache around an existing Redis client.
func NewWithClient(client *redis.Client, memorySize int, logger *slog.Logger) (*Cache, error) {
	if memorySize <= 0 {
		memorySize = 128
	}
	memory, err := lru.New[string, string](memorySize)
	if err != nil {
		return nil, fmt.Errorf("create memory tier: %w", err)
	}
	return &Cache{
		client: client,
		memory: memory,
		logger: logger,
	}, nil
}

// Lookup returns the cached answer for the key. A Redis outage reports
// LookupUnavailable so callers can tell a miss from a broken store, while
// still treating both as the slow path.
func (c *Cache) Lookup(ctx context.Context, key string) (string, domain.LookupResult) {
	if value, ok := c.memory.Get(key); ok {
		c.logger.Debug("cache hit in memory tier", "key_len", len(key))
		return value, domain.LookupHit
	}

	start := time.Now()
	value, err := c.client.Get(ctx, key).Result()
	elapsed := time.Since(start)

	switch {
	case err == nil:
		c.logger.Info("cache hit",
			"key_len", len(key),
			"lookup_ms", elapsed.Milliseconds())
		c.memory.Add(key, value)
		return value, domain.LookupHit
	case errors.Is(err, redis.Nil):
		c.logger.Debug("cache miss",
			"key_len", len(key),
			"lookup_ms", elapsed.Milliseconds())
		return "", domain.LookupMiss
	default:
		c.logger.Warn("cache lookup unavailable", "error", err)
		return "", domain.LookupUnavailable
	}
}

// Store persists the answer under the key. Fire-and-forget: a cache write
// failure must not fail a successful pipeline run, so errors are only logged.
func (c *Cache) Store(ctx context.Context, key, value string) {
	c.memory.Add(key, value)

	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		c.logger.Warn("cache store failed", "error", err)
		return
	}
	c.logger.Debug("cache stored", "key_len", len(key), "value_len", len(value))
}

// Exists reports whether the key is present in either tier.
func (c *Cache) Exists(ctx context.Context, key string) bool {
	if c.memory.Contains(key) {
		return true
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn("cache exists check failed", "error", err)
		return false
	}
	return n > 0
}

// Delete removes the key from both tiers. Errors are only logged; the worst
// outcome of a failed delete is serving a stale answer.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.memory.Remove(key)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache delete failed", "error", err)
	}
}

// Size returns the number of keys in the Redis database.
func (c *Cache) Size(ctx context.Context) (int64, error) {
	n, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrCacheUnavailable, err)
	}
	return n, nil
}

// Ping reports whether the Redis tier is reachable.
func (c *Cache) Ping(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
