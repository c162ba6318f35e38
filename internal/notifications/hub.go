package notifications

import (
	"context"
	"encoding/json"
	"sync"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/google/uuid"
)

// clientBuffer bounds per-client queues; a slow consumer drops messages
// instead of blocking the broadcast loop.
const clientBuffer = 16

// Hub fans events out to connected feed WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: map[string]chan []byte{}}
}

// Register adds a subscriber and returns its id and receive channel.
func (h *Hub) Register() (string, <-chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, clientBuffer)

	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()

	observability.FeedConnections.Inc()
	return id, ch
}

// Unregister removes a subscriber and closes its channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	ch, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		observability.FeedConnections.Dec()
	}
}

// Broadcast delivers a message to every subscriber, dropping it for clients
// whose buffers are full.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Run subscribes to the notifier's event channel and broadcasts every event
// until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, n *Notifier) error {
	sub := n.Subscribe(ctx)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				middleware.Logger.Warn("dropping malformed feed event", "error", err)
				continue
			}
			observability.FeedEventsTotal.WithLabelValues(evt.Type).Inc()
			h.Broadcast([]byte(msg.Payload))
		}
	}
}
