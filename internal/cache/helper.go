package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fachnmchi/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found
// or when rdb is nil.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "get")
	s, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.EndSpan(span, nil)
		return false, nil
	}
	observability.EndSpan(span, err)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, span := observability.TraceRedisOperation(ctx, "set")
	err = rdb.Set(ctx, key, b, ttl).Err()
	observability.EndSpan(span, err)
	return err
}

// Aside tries Redis first; on a miss it calls fetch, which must fill dest,
// and stores dest with ttl. Redis failures fall through to fetch, and the
// store is best-effort. The boolean reports a cache hit.
func Aside(ctx context.Context, rdb *redis.Client, key string, dest any, ttl time.Duration, fetch func() error) (bool, error) {
	if ttl > 0 {
		found, err := GetJSON(ctx, rdb, key, dest)
		if err == nil && found {
			return true, nil
		}
	}

	if err := fetch(); err != nil {
		return false, err
	}

	if ttl > 0 {
		_ = SetJSON(ctx, rdb, key, dest, ttl)
	}
	return false, nil
}
