package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	t.Parallel()

	// Without Redis the notifier swallows publishes instead of failing the
	// request that triggered them.
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "notifications:user:1", UserChannel(1))
	assert.Equal(t, "notifications:user:4021", UserChannel(4021))
}

func TestNotifier_PatternSubscriberReceives(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 2)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, payload string) {
		payloads <- payload
	}))

	require.NoError(t, n.PublishUser(context.Background(), 7, "hello"))

	select {
	case payload := <-payloads:
		assert.Equal(t, "hello", payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published payload")
	}

	// The same subscription carries the broadcast channel.
	require.NoError(t, n.PublishBroadcast(context.Background(), "everyone"))
	select {
	case payload := <-payloads:
		assert.Equal(t, "everyone", payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast payload")
	}
}

func TestNotifier_PatternSubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	var delivered atomic.Int32
	require.NoError(t, n.StartPatternSubscriber(ctx, func(string, string) {
		delivered.Add(1)
	}))

	require.NoError(t, n.PublishUser(context.Background(), 1, "before-cancel"))
	require.Eventually(t, func() bool {
		return delivered.Load() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	// Publishes after cancellation must not reach the callback.
	require.NoError(t, n.PublishUser(context.Background(), 1, "after-cancel"))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), delivered.Load())
}
