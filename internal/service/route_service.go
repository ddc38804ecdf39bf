package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"fachnmchi/internal/cache"
	"fachnmchi/internal/models"
	"fachnmchi/internal/observability"
	"fachnmchi/internal/routing"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// RouteService answers itinerary and station questions.
type RouteService struct {
	planner  *routing.Planner
	network  *routing.Network
	rdb      *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
	jitter   routing.Jitter
}

// RouteServiceOptions are the optional collaborators of a RouteService.
type RouteServiceOptions struct {
	Redis    *redis.Client
	CacheTTL time.Duration
	Now      func() time.Time
	// Jitter spreads departure times; defaults to math/rand.
	Jitter routing.Jitter
}

// RouteView is a scheduled route alternative with its display fields.
type RouteView struct {
	models.RouteOption
	Title       string `json:"title"`
	StepCount   string `json:"step_count"`
	Discrepancy int    `json:"discrepancy"`
}

// RoutePlan is the answer to an itinerary search.
type RoutePlan struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Routes      []RouteView `json:"routes"`
}

type randJitter struct{}

func (randJitter) Float64() float64 { return rand.Float64() }

func NewRouteService(planner *routing.Planner, network *routing.Network, opts RouteServiceOptions) *RouteService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	jitter := opts.Jitter
	if jitter == nil {
		jitter = randJitter{}
	}
	return &RouteService{
		planner:  planner,
		network:  network,
		rdb:      opts.Redis,
		cacheTTL: opts.CacheTTL,
		now:      now,
		jitter:   jitter,
	}
}

// PlanRoutes returns the scheduled alternatives between two places. Plans
// are cached per minute since that is the resolution of their times.
func (s *RouteService) PlanRoutes(ctx context.Context, origin, destination string) (*RoutePlan, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	now := s.now()

	ctx, span := observability.StartSpan(ctx, "routing", "plan",
		attribute.String("route.origin", origin),
		attribute.String("route.destination", destination),
	)
	var err error
	defer func() { observability.EndSpan(span, err) }()

	plan := RoutePlan{Origin: origin, Destination: destination}
	key := cache.RouteKey(origin, destination, now.In(s.planner.Location()))
	var hit bool
	hit, err = cache.Aside(ctx, s.rdb, key, &plan.Routes, s.cacheTTL, func() error {
		routes, err := s.planner.PlanAt(origin, destination, now)
		if err != nil {
			return err
		}
		plan.Routes = make([]RouteView, len(routes))
		for i, r := range routes {
			plan.Routes[i] = RouteView{
				RouteOption: r,
				Title:       routing.Title(r),
				StepCount:   routing.StepCountLabel(r),
				Discrepancy: routing.Discrepancy(r),
			}
		}
		return nil
	})
	switch {
	case err != nil:
		observability.RoutePlans.WithLabelValues("invalid").Inc()
		return nil, err
	case hit:
		observability.RoutePlans.WithLabelValues("cached").Inc()
	default:
		observability.RoutePlans.WithLabelValues("planned").Inc()
	}
	return &plan, nil
}

// ListStations returns the stations of the given type ("" or "all" for every one).
func (s *RouteService) ListStations(stationType string) ([]models.Station, error) {
	t, err := routing.ParseStationType(stationType)
	if err != nil {
		return nil, err
	}
	return s.network.Stations(t), nil
}

// Departures returns the next departures from a station.
func (s *RouteService) Departures(_ context.Context, stationID string) ([]models.Departure, error) {
	station, err := s.network.Station(stationID)
	if err != nil {
		return nil, err
	}
	return routing.Departures(station, s.now(), s.planner.Location(), s.jitter), nil
}
