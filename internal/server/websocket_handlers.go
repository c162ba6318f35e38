package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects non-upgrade requests on /ws routes.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// FeedSocket streams post lifecycle events to the client until it disconnects.
func (s *Server) FeedSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, events := s.hub.Register()
		defer s.hub.Unregister(id)

		// Reader goroutine: we ignore client payloads but must consume
		// control frames to detect disconnects.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case msg, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}
	})
}
