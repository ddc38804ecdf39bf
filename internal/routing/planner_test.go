package routing

import (
	"testing"
	"time"

	"fachnmchi/internal/fixtures"
	"fachnmchi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixturePlanner(t *testing.T) *Planner {
	t.Helper()
	set, err := fixtures.Load()
	require.NoError(t, err)
	return NewPlanner(set.Routes, time.UTC)
}

func TestPlan_ReturnsThreeTemplates(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)

	routes, err := p.Plan("Casa Voyageurs", "Maarif")
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, models.ModeBus, routes[0].Mode)
	assert.Equal(t, "B22", routes[0].Line)
	assert.Equal(t, 26, routes[0].Duration)
	assert.Equal(t, "7 DH", routes[0].Price)

	assert.Equal(t, models.ModeTram, routes[1].Mode)
	assert.Equal(t, "T1", routes[1].Line)
	assert.Equal(t, 31, routes[1].Duration)
	assert.Equal(t, "8 DH", routes[1].Price)

	assert.Equal(t, models.ModeTaxi, routes[2].Mode)
	assert.Equal(t, 15, routes[2].Duration)
	assert.Equal(t, "25-30 DH", routes[2].Price)
	assert.Len(t, routes[2].Steps, 1)
}

func TestPlan_IgnoresPlaceNames(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)

	a, err := p.Plan("Casa Voyageurs", "Maarif")
	require.NoError(t, err)
	b, err := p.Plan("Ain Diab", "Sidi Moumen")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlan_RequiresBothEnds(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)

	for _, tc := range []struct{ origin, destination string }{
		{"", "Maarif"},
		{"Casa Voyageurs", ""},
		{"   ", "Maarif"},
	} {
		_, err := p.Plan(tc.origin, tc.destination)
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
	}
}

func TestPlan_ResultsAreCopies(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)

	routes, err := p.Plan("a", "b")
	require.NoError(t, err)
	routes[0].Steps[0].Duration = 99

	again, err := p.Plan("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 5, again[0].Steps[0].Duration)
}

func TestSchedule_CumulativeTimes(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	routes, err := p.PlanAt("Casa Voyageurs", "Maarif", now)
	require.NoError(t, err)

	bus := routes[0]
	want := [][2]string{{"08:00", "08:05"}, {"08:05", "08:23"}, {"08:23", "08:26"}}
	require.Len(t, bus.Steps, len(want))
	for i, w := range want {
		assert.Equal(t, w[0], bus.Steps[i].DepartureTime, "step %d departure", i)
		assert.Equal(t, w[1], bus.Steps[i].ArrivalTime, "step %d arrival", i)
	}
}

func TestSchedule_Monotonic(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)
	now := time.Date(2024, 5, 10, 17, 42, 0, 0, time.UTC)

	routes, err := p.PlanAt("Casa Voyageurs", "Maarif", now)
	require.NoError(t, err)

	for _, r := range routes {
		prev := ""
		for i, s := range r.Steps {
			assert.LessOrEqual(t, s.DepartureTime, s.ArrivalTime, "route %s step %d", r.ID, i)
			if prev != "" {
				assert.Equal(t, prev, s.DepartureTime, "route %s step %d", r.ID, i)
			}
			prev = s.ArrivalTime
		}
	}
}

func TestSchedule_UsesLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+1", 3600)
	route := models.RouteOption{ID: "x", Mode: models.ModeWalk, Steps: []models.Step{{Type: models.ModeWalk, Duration: 10}}}

	got := Schedule(route, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, "10:00", got.Steps[0].DepartureTime)
	assert.Equal(t, "10:10", got.Steps[0].ArrivalTime)
	assert.Empty(t, route.Steps[0].DepartureTime)
}

func TestDiscrepancy(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)
	routes, err := p.Plan("a", "b")
	require.NoError(t, err)

	for _, r := range routes {
		assert.Equal(t, r.Duration-StepTotal(r), Discrepancy(r))
	}

	skewed := models.RouteOption{Duration: 30, Steps: []models.Step{{Duration: 10}, {Duration: 12}}}
	assert.Equal(t, 8, Discrepancy(skewed))
}

func TestTitleAndStepCount(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)
	routes, err := p.Plan("a", "b")
	require.NoError(t, err)

	assert.Equal(t, "Bus B22", Title(routes[0]))
	assert.Equal(t, "Tram T1", Title(routes[1]))
	assert.Equal(t, "Taxi", Title(routes[2]))
	assert.Equal(t, "3 étapes", StepCountLabel(routes[0]))
	assert.Equal(t, "1 étape", StepCountLabel(routes[2]))
}

func TestFind(t *testing.T) {
	t.Parallel()
	p := newFixturePlanner(t)

	r, err := p.Find("2")
	require.NoError(t, err)
	assert.Equal(t, models.ModeTram, r.Mode)

	_, err = p.Find("42")
	assert.Equal(t, 404, models.StatusFor(err))
}
