// Package notifications fans feed changes out to connected clients through
// Redis pub/sub and a websocket hub.
package notifications

import (
	"encoding/json"
	"time"

	"fachnmchi/internal/models"
)

// FeedChannel is the Redis channel feed events are published on.
const FeedChannel = "feed:events"

// EventType names a feed change.
type EventType string

const (
	EventPostCreated EventType = "post_created"
	EventPostLiked   EventType = "post_liked"
	EventPostPinned  EventType = "post_pinned"
	EventPostShared  EventType = "post_shared"
	// EventMessagesDropped tells a slow client it missed events and should re-fetch.
	EventMessagesDropped EventType = "messages_dropped"
)

// FeedEvent is one change to the feed as seen by subscribers.
type FeedEvent struct {
	Type    EventType    `json:"type"`
	PostID  string       `json:"post_id,omitempty"`
	Post    *models.Post `json:"post,omitempty"`
	Version uint64       `json:"version"`
	At      time.Time    `json:"at"`
}

// Encode renders the event as the JSON sent on the wire.
func (e FeedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeFeedEvent parses a wire payload.
func DecodeFeedEvent(data []byte) (FeedEvent, error) {
	var e FeedEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
