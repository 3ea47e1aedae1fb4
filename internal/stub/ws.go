package stub

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func (s *Server) wsRoutes() {
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		userID, err := parseToken(s.secret, c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		c.Locals("userID", userID)
		return c.Next()
	})

	s.app.Get("/ws", websocket.New(s.handleWS))
}

// handleWS runs one connection: register with the hub, then re-broadcast every
// frame the client sends until it disconnects. Every connected client receives
// every event, the sender included.
func (s *Server) handleWS(conn *websocket.Conn) {
	userID := conn.Locals("userID").(uint)
	log.Printf("WebSocket: user %d connected", userID)

	s.hub.register(conn)
	defer func() {
		s.hub.unregister(conn)
		_ = conn.Close()
		log.Printf("WebSocket: user %d disconnected", userID)
	}()

	ctx := context.Background()
	for {
		messageType, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		s.broadcast(ctx, frame)
	}
}
