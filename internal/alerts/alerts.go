// Package alerts serves the community traffic alerts.
package alerts

import (
	"fachnmchi/internal/models"
)

// Board holds the current alerts in display order.
type Board struct {
	alerts []models.Alert
}

// NewBoard copies alerts into a board and fills in their type labels.
func NewBoard(alerts []models.Alert) *Board {
	copied := make([]models.Alert, len(alerts))
	for i, a := range alerts {
		a.TypeLabel = a.Type.Label()
		copied[i] = a
	}
	return &Board{alerts: copied}
}

// ParseType accepts an alert type or "" / "all" for no filter.
func ParseType(s string) (models.AlertType, error) {
	switch s {
	case "", "all":
		return "", nil
	}
	t := models.AlertType(s)
	if !t.Valid() {
		return "", models.NewValidationError("type must be one of traffic, event, roadblock, other, all")
	}
	return t, nil
}

// List returns alerts of type t, or all of them when t is empty.
func (b *Board) List(t models.AlertType) []models.Alert {
	out := make([]models.Alert, 0, len(b.alerts))
	for _, a := range b.alerts {
		if t == "" || a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
