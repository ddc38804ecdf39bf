package server

import (
	"context"
	"log/slog"

	"fachnmchi/internal/middleware"
	"fachnmchi/internal/models"
	"fachnmchi/internal/share"

	"github.com/gofiber/fiber/v2"
)

// respondError writes err with the status its code maps to. Server-side
// failures are logged since their cause is not sent to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	return models.RespondWithError(c, status, err)
}

// clientID returns the id ContextMiddleware stored for this request.
func clientID(c *fiber.Ctx) string {
	if id, ok := c.Locals("clientID").(string); ok && id != "" {
		return id
	}
	return middleware.ClientID(c)
}

// clientSharer stands in for the caller's native share sheet. The browser
// does the actual sharing; the server only learns whether it can.
type clientSharer struct {
	available bool
}

func (s clientSharer) Share(_ context.Context, _ share.Payload) error {
	if !s.available {
		return share.ErrUnavailable
	}
	return nil
}
