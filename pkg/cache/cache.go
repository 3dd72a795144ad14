// Package cache is a thin JSON cache over Redis. The settings singleton
// and catalog listings sit behind it; when Redis is down the helpers
// degrade to misses and writes become no-ops, so the storefront keeps
// serving straight from the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/muthuvel/santhai/config"
	"github.com/muthuvel/santhai/pkg/metrics"
)

var (
	RDB *redis.Client
	Ctx = context.Background()
)

// Connect dials Redis using the configured address and verifies it with
// a ping. On failure RDB stays nil and every helper short-circuits.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get unmarshals the cached value under key into dest. It reports true
// only on a hit with valid JSON; anything else counts as a miss.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value as JSON under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes keys. Missing keys are not an error.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget drops a single key, used on settings and catalog writes.
func Forget(key string) error {
	return Del(key)
}
