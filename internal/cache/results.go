// Package cache provides a Redis-backed cache of generated docstrings so
// that resubmitting the same snippet does not cost another model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "docagent:result:"

type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResultCache(rdb *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Key derives a stable cache key from everything that influences the output.
func Key(style, model, source string) string {
	h := sha256.New()
	h.Write([]byte(style))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached documented code for a key, reporting a miss
// separately from transport errors.
func (c *ResultCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores documented code under a key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key, documented string) error {
	return c.rdb.Set(ctx, key, documented, c.ttl).Err()
}
