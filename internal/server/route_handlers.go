package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetRoutes handles GET /api/routes?origin=&destination=
// @Summary Plan a trip
// @Description Scheduled bus, tram and taxi alternatives leaving now.
// @Tags routes
// @Produce json
// @Param origin query string true "Origin"
// @Param destination query string true "Destination"
// @Success 200 {object} service.RoutePlan
// @Failure 400 {object} models.ErrorResponse
// @Router /routes [get]
func (s *Server) GetRoutes(c *fiber.Ctx) error {
	plan, err := s.routeService.PlanRoutes(c.UserContext(), c.Query("origin"), c.Query("destination"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// GetStations handles GET /api/stations?type=
// @Summary Transit stations
// @Tags stations
// @Produce json
// @Param type query string false "all, tram or train"
// @Success 200 {array} models.Station
// @Router /stations [get]
func (s *Server) GetStations(c *fiber.Ctx) error {
	stations, err := s.routeService.ListStations(c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stations)
}

// GetDepartures handles GET /api/stations/:id/departures
func (s *Server) GetDepartures(c *fiber.Ctx) error {
	departures, err := s.routeService.Departures(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(departures)
}
