package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/google/uuid"
)

// Event types published to Redis so delivery consumers (and any future
// realtime tier) can react to writes as they happen.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"

	EventFriendRequestReceived  = "friend_request_received"
	EventFriendRequestAccepted  = "friend_request_accepted"
	EventFriendRequestRejected  = "friend_request_rejected"
	EventFriendRequestCancelled = "friend_request_cancelled"
	EventFriendRemoved          = "friend_removed"
)

// userSummary is the minimal user representation embedded in event payloads.
func userSummary(u models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"username": u.Username,
	}
}

// eventEnvelope wraps a payload with its type and a unique delivery ID.
// Consumers that overlap the per-user pattern and the broadcast channel
// dedupe on the ID.
func eventEnvelope(eventType string, payload map[string]interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":      uuid.NewString(),
		"type":    eventType,
		"payload": payload,
	})
}

// publishUserEvent sends an event to a single user's notification channel.
// Publishing is best-effort; a failure is logged and the request proceeds.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}

	envelope, err := eventEnvelope(eventType, payload)
	if err != nil {
		log.Printf("marshal %s event: %v", eventType, err)
		return
	}

	if err := s.notifier.PublishUser(context.Background(), userID, string(envelope)); err != nil {
		log.Printf("publish %s event to user %d: %v", eventType, userID, err)
	}
}

// publishBroadcastEvent sends an event to the shared broadcast channel.
func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}

	envelope, err := eventEnvelope(eventType, payload)
	if err != nil {
		log.Printf("marshal %s event: %v", eventType, err)
		return
	}

	if err := s.notifier.PublishBroadcast(context.Background(), string(envelope)); err != nil {
		log.Printf("publish %s broadcast event: %v", eventType, err)
	}
}
