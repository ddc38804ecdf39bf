package models

// AlertType classifies a community traffic alert.
type AlertType string

const (
	AlertTraffic   AlertType = "traffic"
	AlertEvent     AlertType = "event"
	AlertRoadblock AlertType = "roadblock"
	AlertOther     AlertType = "other"
)

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	switch t {
	case AlertTraffic, AlertEvent, AlertRoadblock, AlertOther:
		return true
	}
	return false
}

// Label returns the French display label for the type.
func (t AlertType) Label() string {
	switch t {
	case AlertTraffic:
		return "Trafic"
	case AlertEvent:
		return "Événement"
	case AlertRoadblock:
		return "Route barrée"
	default:
		return "Autre"
	}
}

// Alert is a user- or system-reported disruption.
type Alert struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Type        AlertType `json:"type" yaml:"type"`
	TypeLabel   string    `json:"type_label" yaml:"-"`
	Location    string    `json:"location" yaml:"location"`
	Timestamp   string    `json:"timestamp" yaml:"timestamp"`
	ReportedBy  string    `json:"reported_by" yaml:"reportedBy"`
	Upvotes     int       `json:"upvotes" yaml:"upvotes"`
}
