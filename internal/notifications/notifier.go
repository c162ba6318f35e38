// Package notifications fans post lifecycle events out to feed subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "inkwell:events"

// Event types published on the feed channel.
const (
	EventPostCreated = "post_created"
	EventPostUpdated = "post_updated"
	EventPostDeleted = "post_deleted"
)

// Event is one post lifecycle notification.
type Event struct {
	Type   string    `json:"type"`
	PostID uint      `json:"postId"`
	At     time.Time `json:"at"`
}

// Notifier publishes events over Redis pub/sub so every server instance
// sees writes performed by its peers.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier backed by the given Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPostEvent emits a post event. Publishing is best-effort; a failed
// publish is logged, never surfaced to the write path.
func (n *Notifier) PublishPostEvent(ctx context.Context, eventType string, postID uint) {
	if n == nil || n.rdb == nil {
		return
	}
	payload, err := json.Marshal(Event{Type: eventType, PostID: postID, At: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		middleware.Logger.Warn("failed to publish feed event",
			"event_type", eventType, "post_id", postID, "error", err)
	}
}

// Subscribe returns the pub/sub subscription for the events channel.
func (n *Notifier) Subscribe(ctx context.Context) *redis.PubSub {
	return n.rdb.Subscribe(ctx, eventsChannel)
}
