package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"fachnmchi/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes feed events into Redis. Without Redis it hands events
// straight to a local sink, so a single instance still streams changes.
type Notifier struct {
	rdb   *redis.Client
	local func(payload []byte)
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// SetLocalSink sets where events go when Redis is not configured.
func (n *Notifier) SetLocalSink(fn func(payload []byte)) {
	n.local = fn
}

// Distributed reports whether events travel through Redis.
func (n *Notifier) Distributed() bool {
	return n != nil && n.rdb != nil
}

// PublishFeedEvent sends ev to every subscriber.
func (n *Notifier) PublishFeedEvent(ctx context.Context, ev FeedEvent) error {
	if n == nil {
		return nil
	}
	payload, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if n.rdb == nil {
		if n.local != nil {
			n.local(payload)
		}
		return nil
	}
	return n.rdb.Publish(ctx, FeedChannel, payload).Err()
}

// StartFeedSubscriber subscribes to FeedChannel and calls onMessage for each
// payload until ctx is cancelled. It is a no-op without Redis.
func (n *Notifier) StartFeedSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, FeedChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", FeedChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in feed subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
