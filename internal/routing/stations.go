package routing

import (
	"time"

	"fachnmchi/internal/models"
)

// Jitter supplies the random part of a departure offset.
// *math/rand/v2.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

// DeparturesShown is how many upcoming departures a station lists.
const DeparturesShown = 3

// Network is the set of stations on the transit map.
type Network struct {
	stations []models.Station
}

// NewNetwork wraps the given stations.
func NewNetwork(stations []models.Station) *Network {
	copied := make([]models.Station, len(stations))
	for i, s := range stations {
		copied[i] = cloneStation(s)
	}
	return &Network{stations: copied}
}

// ParseStationType accepts "tram", "train" or "all". The empty string means
// all; the returned type is empty in that case.
func ParseStationType(s string) (models.StationType, error) {
	switch s {
	case "", "all":
		return "", nil
	case string(models.StationTram):
		return models.StationTram, nil
	case string(models.StationTrain):
		return models.StationTrain, nil
	}
	return "", models.NewValidationError("type must be one of tram, train, all")
}

// Stations lists stations of type t, or all of them when t is empty.
func (n *Network) Stations(t models.StationType) []models.Station {
	out := make([]models.Station, 0, len(n.stations))
	for _, s := range n.stations {
		if t == "" || s.Type == t {
			out = append(out, cloneStation(s))
		}
	}
	return out
}

// Station returns the station with the given id.
func (n *Network) Station(id string) (models.Station, error) {
	for _, s := range n.stations {
		if s.ID == id {
			return cloneStation(s), nil
		}
	}
	return models.Station{}, models.NewNotFoundError("Station", id)
}

// Departures lists the next departures from a station: the i-th one leaves
// 10*i minutes from now plus up to five minutes of jitter.
func Departures(station models.Station, now time.Time, loc *time.Location, rng Jitter) []models.Departure {
	if loc != nil {
		now = now.In(loc)
	}
	line := ""
	if len(station.Lines) > 0 {
		line = station.Lines[0]
	}
	out := make([]models.Departure, 0, DeparturesShown)
	for i := 1; i <= DeparturesShown; i++ {
		offset := float64(10*i) + rng.Float64()*5
		at := now.Add(time.Duration(offset * float64(time.Minute)))
		out = append(out, models.Departure{
			Line:     line,
			Headsign: Headsign(station.Type),
			Time:     at.Format(TimeLayout),
		})
	}
	return out
}

// Headsign is the terminus shown on departures from a station of type t.
func Headsign(t models.StationType) string {
	if t == models.StationTram {
		return "Facultés"
	}
	return "Marrakech"
}

func cloneStation(s models.Station) models.Station {
	if s.Lines != nil {
		lines := make([]string, len(s.Lines))
		copy(lines, s.Lines)
		s.Lines = lines
	}
	return s
}
