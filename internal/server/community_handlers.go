package server

import (
	"fachnmchi/internal/models"
	"fachnmchi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAlerts handles GET /api/alerts?type=
// @Summary Traffic alerts
// @Tags alerts
// @Produce json
// @Param type query string false "all, traffic, event, roadblock or other"
// @Success 200 {array} models.Alert
// @Router /alerts [get]
func (s *Server) GetAlerts(c *fiber.Ctx) error {
	list, err := s.communityService.ListAlerts(c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ReportLocation handles POST /api/location
// @Summary Share position
// @Description Acknowledges the device position, or the reason it could not be read.
// @Tags location
// @Accept json
// @Produce json
// @Param request body service.LocationReport true "Position or failure"
// @Success 200 {object} service.LocationResult
// @Router /location [post]
func (s *Server) ReportLocation(c *fiber.Ctx) error {
	var req service.LocationReport
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.communityService.ReportLocation(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetFeatureFlags returns configured feature flags and their state for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(clientID(c)),
	})
}
