package middleware

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fachnmchi/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when Redis cannot count it.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// Quota is the state of one client's budget after counting a request.
type Quota struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// rateLimitBypassed reports whether limits are off for the current APP_ENV.
// Development, test and stress runs are never throttled.
func rateLimitBypassed() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// countRequest counts one request against a fixed window keyed by resource
// and client id.
func countRequest(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (Quota, error) {
	if rdb == nil {
		return Quota{}, errNoRedis
	}

	key := "rl:" + resource + ":" + id
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return Quota{}, err
	}
	// The first hit opens the window.
	if count == 1 {
		rdb.Expire(ctx, key, window)
	}
	reset, err := rdb.PTTL(ctx, key).Result()
	if err != nil || reset <= 0 {
		reset = window
	}

	return Quota{
		Allowed:   count <= int64(limit),
		Remaining: max(limit-int(count), 0),
		ResetIn:   reset,
	}, nil
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`
// per client. It defaults to FailOpen policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit FailPolicy. Counted
// responses carry X-RateLimit-Limit and X-RateLimit-Remaining headers.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 || rateLimitBypassed() {
			return c.Next()
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		q, err := countRequest(c.UserContext(), rdb, resource, "client:"+ClientID(c), limit, window)
		if err != nil {
			if policy == FailOpen {
				return c.Next()
			}
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable, rejecting",
				slog.String("resource", resource),
				slog.String("error", err.Error()),
			)
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewUnavailableError("rate limit", err))
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		if !q.Allowed {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError(q.ResetIn))
		}
		return c.Next()
	}
}
