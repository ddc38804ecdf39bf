package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FeedKeyPrefix  = "feed:"
	RouteKeyPrefix = "routes:"
)

// FeedKey identifies one ranked feed view. The snapshot version is part of
// the key, so a mutation makes earlier views unreachable.
func FeedKey(version uint64, order string, exact bool, query string) string {
	mode := "bucket"
	if exact {
		mode = "exact"
	}
	return fmt.Sprintf("%sv%d:%s:%s:%s", FeedKeyPrefix, version, order, mode,
		url.QueryEscape(strings.ToLower(query)))
}

// RouteKey identifies a scheduled route set. Derived times only hold for
// the minute they were computed in, which is part of the key.
func RouteKey(origin, destination string, at time.Time) string {
	return fmt.Sprintf("%s%s:%s:%s", RouteKeyPrefix,
		url.QueryEscape(strings.ToLower(strings.TrimSpace(origin))),
		url.QueryEscape(strings.ToLower(strings.TrimSpace(destination))),
		at.Format("200601021504"))
}

// InvalidatePrefix deletes every key starting with prefix.
func InvalidatePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// InvalidateFeed drops every cached feed view.
func InvalidateFeed(ctx context.Context, rdb *redis.Client) error {
	return InvalidatePrefix(ctx, rdb, FeedKeyPrefix)
}
