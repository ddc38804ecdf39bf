package models

// TransitMode is the kind of vehicle (or walking) used for a route or a step.
type TransitMode string

const (
	ModeBus  TransitMode = "bus"
	ModeTram TransitMode = "tram"
	ModeWalk TransitMode = "walk"
	ModeTaxi TransitMode = "taxi"
)

// Valid reports whether m is one of the known modes.
func (m TransitMode) Valid() bool {
	switch m {
	case ModeBus, ModeTram, ModeWalk, ModeTaxi:
		return true
	}
	return false
}

// Step is one leg of a route.
type Step struct {
	Type          TransitMode `json:"type" yaml:"type"`
	Description   string      `json:"description" yaml:"description"`
	Duration      int         `json:"duration" yaml:"duration"`
	Line          string      `json:"line,omitempty" yaml:"line,omitempty"`
	DepartureTime string      `json:"departure_time,omitempty" yaml:"-"`
	ArrivalTime   string      `json:"arrival_time,omitempty" yaml:"-"`
}

// RouteOption is one candidate multi-leg itinerary between two places.
// Duration and the step durations are authored independently.
type RouteOption struct {
	ID       string      `json:"id" yaml:"id"`
	Mode     TransitMode `json:"mode" yaml:"mode"`
	Duration int         `json:"duration" yaml:"duration"`
	Price    string      `json:"price" yaml:"price"`
	Line     string      `json:"line,omitempty" yaml:"line,omitempty"`
	Steps    []Step      `json:"steps" yaml:"steps"`
}

// StationType distinguishes tram stops from train stations.
type StationType string

const (
	StationTram  StationType = "tram"
	StationTrain StationType = "train"
)

// MapPoint is a position on the schematic map, in percent of its size.
type MapPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Station is a stop shown on the transit map.
type Station struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Type     StationType `json:"type" yaml:"type"`
	Lines    []string    `json:"lines" yaml:"lines"`
	Position MapPoint    `json:"position" yaml:"position"`
}

// Departure is an upcoming vehicle leaving a station.
type Departure struct {
	Line     string `json:"line"`
	Headsign string `json:"headsign"`
	Time     string `json:"time"`
}
