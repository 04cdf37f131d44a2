// Package cache memoizes optimization results in Redis, keyed by a digest
// of the manifest and container selection.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/piwi3910/LoadPlanner/internal/engine"
	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	resultKeyPrefix = "loadplan:"
	DefaultTTL      = 24 * time.Hour
)

// Key returns the hex SHA-256 of the canonical JSON encoding of the inputs.
// Item and container order are part of the key since both affect the plan.
func Key(items []model.CargoItem, containers []model.ContainerSpec) (string, error) {
	if items == nil {
		items = []model.CargoItem{}
	}
	if containers == nil {
		containers = []model.ContainerSpec{}
	}
	payload := struct {
		Items      []model.CargoItem     `json:"items"`
		Containers []model.ContainerSpec `json:"containers"`
	}{items, containers}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// RedisCache stores optimization results as JSON under resultKeyPrefix.
// Entries expire after the configured TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps client. A non-positive ttl selects DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the stored result for key. The boolean is false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (model.OptimizationResult, bool, error) {
	data, err := c.client.Get(ctx, resultKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.OptimizationResult{}, false, nil
	}
	if err != nil {
		return model.OptimizationResult{}, false, err
	}

	var result model.OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.OptimizationResult{}, false, fmt.Errorf("decoding cached result %s: %w", key, err)
	}
	return result, true, nil
}

// Put stores result under key with the cache TTL.
func (c *RedisCache) Put(ctx context.Context, key string, result model.OptimizationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return c.client.Set(ctx, resultKeyPrefix+key, data, c.ttl).Err()
}

// Optimize returns the cached result for the inputs, or runs opt and
// stores what it produced. A failing lookup falls through to the
// optimizer and a failing store is only logged: the cache never prevents
// a result from being returned.
func Optimize(ctx context.Context, c *RedisCache, opt *engine.Optimizer, logger *slog.Logger,
	items []model.CargoItem, containers []model.ContainerSpec) (model.OptimizationResult, bool, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	key, err := Key(items, containers)
	if err != nil {
		return model.OptimizationResult{}, false, err
	}

	if cached, ok, err := c.Get(ctx, key); err != nil {
		logger.Warn("result cache lookup failed", "key", key, "error", err)
	} else if ok {
		logger.Debug("result cache hit", "key", key)
		return cached, true, nil
	}

	result := opt.Optimize(items, containers)
	if err := c.Put(ctx, key, result); err != nil {
		logger.Warn("result cache store failed", "key", key, "error", err)
	}
	return result, false, nil
}
