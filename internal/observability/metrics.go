// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_api_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by SQL operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "social_api_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// SessionsStarted counts successful logins.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_api_sessions_started_total",
		Help: "Total number of sessions started",
	})

	// SessionsEnded counts ended sessions by reason.
	SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_api_sessions_ended_total",
		Help: "Total number of sessions ended by reason",
	}, []string{"reason"})

	// FriendRequestEvents counts friend request lifecycle transitions.
	FriendRequestEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_api_friend_request_events_total",
		Help: "Total friend request lifecycle events by action",
	}, []string{"action"})

	// ContentCreated counts created posts, comments and events.
	ContentCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_api_content_created_total",
		Help: "Total content items created by kind",
	}, []string{"kind"})

	// NotificationsPublished counts notification payloads published to Redis.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_api_notifications_published_total",
		Help: "Total notifications published by channel kind",
	}, []string{"channel"})
)

// TrackQuery records the latency of a single database query.
func TrackQuery(operation string, elapsed time.Duration) {
	if operation == "" {
		operation = "UNKNOWN"
	}
	DatabaseQueryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordSessionStart increments the session start counter.
func RecordSessionStart() {
	SessionsStarted.Inc()
}

// RecordSessionEnd increments the session end counter for the given reason.
func RecordSessionEnd(reason string) {
	SessionsEnded.WithLabelValues(reason).Inc()
}

// RecordFriendRequestEvent increments the friend request counter for the action.
func RecordFriendRequestEvent(action string) {
	FriendRequestEvents.WithLabelValues(action).Inc()
}

// RecordContentCreated increments the content counter for the kind.
func RecordContentCreated(kind string) {
	ContentCreated.WithLabelValues(kind).Inc()
}
