// Package notifications provides notification delivery over Redis pub/sub.
// Handlers publish lifecycle events (friend requests, new posts and comments)
// to per-user channels; delivery consumers subscribe with the pattern helper.
package notifications

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/clairelorenzo/app-backend-6104/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	channel := fmt.Sprintf("notifications:user:%d", userID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues("user").Inc()
	return nil
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	if err := n.rdb.Publish(ctx, "notifications:broadcast", payload).Err(); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues("broadcast").Inc()
	return nil
}

// StartPatternSubscriber subscribes to `notifications:user:*` and the
// broadcast channel and calls onMessage for each incoming message.
// onMessage receives channel and payload. The subscriber runs until ctx is
// cancelled.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
	go consume(ctx, sub, onMessage)
	return nil
}

// consume drains the subscription until ctx ends or Redis closes the channel.
func consume(ctx context.Context, sub *redis.PubSub, onMessage func(channel string, payload string)) {
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			deliver(msg, onMessage)
		}
	}
}

// deliver invokes the callback for one message. A panic in the callback is
// logged and swallowed so a bad consumer cannot take the subscriber down.
func deliver(msg *redis.Message, onMessage func(channel string, payload string)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in notification delivery: %v\n%s", r, debug.Stack())
		}
	}()
	onMessage(msg.Channel, msg.Payload)
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
