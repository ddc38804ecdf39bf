package server

import (
	"log/slog"

	"fachnmchi/internal/featureflags"
	"fachnmchi/internal/middleware"
	"fachnmchi/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpgradeRequired rejects plain HTTP requests on websocket routes. The
// feed_stream flag can switch the stream off per client.
func (s *Server) UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !s.featureFlags.Enabled(featureflags.FeedStream, clientID(c)) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("feed stream is disabled"))
		}
		c.Locals("clientID", clientID(c))
		return c.Next()
	}
}

// FeedStreamHandler streams feed events to the connected client.
func (s *Server) FeedStreamHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, _ := conn.Locals("clientID").(string)

		client, err := s.hub.Register(id, conn)
		if err != nil {
			middleware.Logger.Warn("feed stream: failed to register client",
				slog.String("client_id", id), slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
