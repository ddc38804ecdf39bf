// Package routing serves the route planner: static route templates between
// two places, derived step times, and the stations shown on the transit map.
package routing

import (
	"fmt"
	"strings"
	"time"

	"fachnmchi/internal/models"
)

// TimeLayout is the display format of every time of day the planner emits.
const TimeLayout = "15:04"

// Planner hands out route alternatives. It never computes a real route: the
// same templates are returned for every origin and destination.
type Planner struct {
	routes []models.RouteOption
	loc    *time.Location
}

// NewPlanner creates a planner over the given templates. Times are rendered
// in loc; a nil loc means UTC.
func NewPlanner(routes []models.RouteOption, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.UTC
	}
	copied := make([]models.RouteOption, len(routes))
	for i, r := range routes {
		copied[i] = cloneRoute(r)
	}
	return &Planner{routes: copied, loc: loc}
}

// Location returns the time zone used for derived times.
func (p *Planner) Location() *time.Location {
	return p.loc
}

// Plan returns the route alternatives between origin and destination.
// Both must be non-empty after trimming.
func (p *Planner) Plan(origin, destination string) ([]models.RouteOption, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, models.NewValidationError("origin and destination are required")
	}
	out := make([]models.RouteOption, len(p.routes))
	for i, r := range p.routes {
		out[i] = cloneRoute(r)
	}
	return out, nil
}

// PlanAt is Plan followed by Schedule on every alternative.
func (p *Planner) PlanAt(origin, destination string, now time.Time) ([]models.RouteOption, error) {
	routes, err := p.Plan(origin, destination)
	if err != nil {
		return nil, err
	}
	for i := range routes {
		routes[i] = Schedule(routes[i], now, p.loc)
	}
	return routes, nil
}

// Find returns the template with the given id.
func (p *Planner) Find(id string) (models.RouteOption, error) {
	for _, r := range p.routes {
		if r.ID == id {
			return cloneRoute(r), nil
		}
	}
	return models.RouteOption{}, models.NewNotFoundError("Route", id)
}

// Schedule fills in departure and arrival times for each step. The first
// step leaves at now; each later step leaves when the previous one arrives.
// The input route is not modified.
func Schedule(route models.RouteOption, now time.Time, loc *time.Location) models.RouteOption {
	if loc != nil {
		now = now.In(loc)
	}
	out := cloneRoute(route)
	elapsed := 0
	for i := range out.Steps {
		dep := now.Add(time.Duration(elapsed) * time.Minute)
		elapsed += out.Steps[i].Duration
		arr := now.Add(time.Duration(elapsed) * time.Minute)
		out.Steps[i].DepartureTime = dep.Format(TimeLayout)
		out.Steps[i].ArrivalTime = arr.Format(TimeLayout)
	}
	return out
}

// StepTotal is the sum of the step durations.
func StepTotal(route models.RouteOption) int {
	total := 0
	for _, s := range route.Steps {
		total += s.Duration
	}
	return total
}

// Discrepancy is the route's advertised duration minus the sum of its step
// durations. The two are authored separately and may disagree.
func Discrepancy(route models.RouteOption) int {
	return route.Duration - StepTotal(route)
}

// Title is the heading shown for a route, e.g. "Bus B22" or "Taxi".
func Title(route models.RouteOption) string {
	var name string
	switch route.Mode {
	case models.ModeBus:
		name = "Bus"
	case models.ModeTram:
		name = "Tram"
	case models.ModeTaxi:
		name = "Taxi"
	case models.ModeWalk:
		name = "À pied"
	default:
		name = string(route.Mode)
	}
	if route.Line == "" {
		return name
	}
	return name + " " + route.Line
}

// StepCountLabel is "1 étape" or "N étapes".
func StepCountLabel(route models.RouteOption) string {
	n := len(route.Steps)
	if n == 1 {
		return "1 étape"
	}
	return fmt.Sprintf("%d étapes", n)
}

func cloneRoute(r models.RouteOption) models.RouteOption {
	if r.Steps != nil {
		steps := make([]models.Step, len(r.Steps))
		copy(steps, r.Steps)
		r.Steps = steps
	}
	return r
}
