// Package fixtures holds the static seed data the app ships with: community
// posts, route templates, alerts and transit stations.
package fixtures

import (
	_ "embed"
	"fmt"

	"fachnmchi/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var raw []byte

type postFixture struct {
	ID           string            `yaml:"id"`
	Question     string            `yaml:"question"`
	Details      string            `yaml:"details"`
	Location     string            `yaml:"location"`
	Author       string            `yaml:"author"`
	AuthorAvatar string            `yaml:"authorAvatar"`
	Time         string            `yaml:"time"`
	Answers      int               `yaml:"answers"`
	Tags         []string          `yaml:"tags"`
	Pinned       bool              `yaml:"pinned"`
	PinnedUntil  string            `yaml:"pinnedUntil"`
	Likes        int               `yaml:"likes"`
	Liked        bool              `yaml:"liked"`
	Shared       bool              `yaml:"shared"`
	Itinerary    *itineraryFixture `yaml:"itinerary"`
}

type itineraryFixture struct {
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`
	RouteID     string `yaml:"routeId"`
}

// Set is the decoded fixture file.
type Set struct {
	Posts    []models.Post
	Routes   []models.RouteOption
	Alerts   []models.Alert
	Stations []models.Station
}

type document struct {
	Posts    []postFixture        `yaml:"posts"`
	Routes   []models.RouteOption `yaml:"routes"`
	Alerts   []models.Alert       `yaml:"alerts"`
	Stations []models.Station     `yaml:"stations"`
}

// Load decodes the embedded fixtures. Every call returns fresh values, so
// callers may modify the result freely.
func Load() (*Set, error) {
	return Parse(raw)
}

// Parse decodes a fixture document and checks it for obvious mistakes.
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	set := &Set{
		Posts:    make([]models.Post, 0, len(doc.Posts)),
		Routes:   doc.Routes,
		Alerts:   doc.Alerts,
		Stations: doc.Stations,
	}

	seen := make(map[string]struct{}, len(doc.Posts))
	for i, p := range doc.Posts {
		if p.ID == "" {
			return nil, fmt.Errorf("post #%d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("post %q: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Likes < 0 {
			return nil, fmt.Errorf("post %q: negative likes", p.ID)
		}
		set.Posts = append(set.Posts, p.toModel(i))
	}

	for _, r := range set.Routes {
		if !r.Mode.Valid() {
			return nil, fmt.Errorf("route %q: unknown mode %q", r.ID, r.Mode)
		}
		if len(r.Steps) == 0 {
			return nil, fmt.Errorf("route %q: no steps", r.ID)
		}
		for _, s := range r.Steps {
			if !s.Type.Valid() {
				return nil, fmt.Errorf("route %q: unknown step type %q", r.ID, s.Type)
			}
		}
	}

	for i := range set.Alerts {
		set.Alerts[i].TypeLabel = set.Alerts[i].Type.Label()
	}

	return set, nil
}

func (p postFixture) toModel(position int) models.Post {
	post := models.Post{
		ID:           p.ID,
		Question:     p.Question,
		Details:      p.Details,
		Location:     p.Location,
		Author:       p.Author,
		AuthorAvatar: p.AuthorAvatar,
		Time:         p.Time,
		Answers:      p.Answers,
		Tags:         p.Tags,
		IsPinned:     p.Pinned,
		PinnedUntil:  p.PinnedUntil,
		Likes:        p.Likes,
		IsLiked:      p.Liked,
		IsShared:     p.Shared,
		Position:     position,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if p.Itinerary != nil {
		post.Itinerary = &models.Itinerary{
			Origin:      p.Itinerary.Origin,
			Destination: p.Itinerary.Destination,
			RouteID:     p.Itinerary.RouteID,
		}
	}
	return post
}
