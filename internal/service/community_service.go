package service

import (
	"context"

	"fachnmchi/internal/alerts"
	"fachnmchi/internal/geo"
	"fachnmchi/internal/models"
)

// CommunityService covers the alert board and position sharing.
type CommunityService struct {
	board *alerts.Board
}

// LocationReport is what a client sends after asking the device for its
// position: either coordinates or the reason the lookup failed.
type LocationReport struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// Error is "unsupported", "denied" or any other failure reason.
	Error string `json:"error,omitempty"`
}

// LocationResult acknowledges a report.
type LocationResult struct {
	Shared   bool          `json:"shared"`
	Position *geo.Position `json:"position,omitempty"`
	Notice   models.Notice `json:"notice"`
}

// reportedLocator replays a client report through geo.Locator.
type reportedLocator struct {
	report LocationReport
}

func (l reportedLocator) CurrentPosition(_ context.Context) (geo.Position, error) {
	if l.report.Error != "" {
		return geo.Position{}, geo.ParseFailure(l.report.Error)
	}
	if l.report.Latitude == nil || l.report.Longitude == nil {
		return geo.Position{}, geo.ErrPermissionDenied
	}
	return geo.Position{Latitude: *l.report.Latitude, Longitude: *l.report.Longitude}, nil
}

func NewCommunityService(board *alerts.Board) *CommunityService {
	return &CommunityService{board: board}
}

// ListAlerts returns the alerts of the given type ("" or "all" for every one).
func (s *CommunityService) ListAlerts(alertType string) ([]models.Alert, error) {
	t, err := alerts.ParseType(alertType)
	if err != nil {
		return nil, err
	}
	return s.board.List(t), nil
}

// ReportLocation turns a client report into the notice to show. Failed
// lookups are not errors; out-of-range coordinates are.
func (s *CommunityService) ReportLocation(ctx context.Context, report LocationReport) (*LocationResult, error) {
	if report.Error == "" && report.Latitude != nil && report.Longitude != nil {
		pos := geo.Position{Latitude: *report.Latitude, Longitude: *report.Longitude}
		if err := pos.Validate(); err != nil {
			return nil, err
		}
	}
	pos, notice, err := geo.Locate(ctx, reportedLocator{report: report})
	if err != nil {
		return &LocationResult{Notice: notice}, nil
	}
	return &LocationResult{Shared: true, Position: &pos, Notice: notice}, nil
}
