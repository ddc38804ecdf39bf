// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Itinerary ties a post to a trip between two named places.
type Itinerary struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	RouteID     string `json:"route_id,omitempty"`
}

// Post represents a community question in the feed.
type Post struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	Question     string `gorm:"type:text;not null" json:"question"`
	Details      string `gorm:"type:text" json:"details,omitempty"`
	Location     string `json:"location,omitempty"`
	Author       string `gorm:"not null" json:"author"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
	// Time is a free-text relative label such as "Il y a 15 min".
	Time        string     `gorm:"column:time_label;not null" json:"time"`
	Answers     int        `gorm:"not null;default:0" json:"answers"`
	Tags        []string   `gorm:"serializer:json;type:text" json:"tags"`
	IsPinned    bool       `gorm:"not null;default:false" json:"is_pinned"`
	PinnedUntil string     `json:"pinned_until,omitempty"`
	Likes       int        `gorm:"not null;default:0" json:"likes"`
	IsLiked     bool       `gorm:"not null;default:false" json:"is_liked"`
	IsShared    bool       `gorm:"not null;default:false" json:"is_shared"`
	Itinerary   *Itinerary `gorm:"serializer:json;type:text" json:"itinerary,omitempty"`
	// Position is the post's index in the authoritative collection.
	Position  int       `gorm:"not null;default:0;index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
