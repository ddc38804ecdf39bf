package feed

import (
	"cmp"
	"slices"
	"strings"

	"fachnmchi/internal/models"
)

// Order names a feed ranking.
type Order string

const (
	OrderRecent  Order = "recent"
	OrderPopular Order = "popular"
)

// ParseOrder maps a query value to an Order; empty means recent.
func ParseOrder(s string) (Order, bool) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderRecent:
		return OrderRecent, true
	case OrderPopular:
		return OrderPopular, true
	}
	return "", false
}

// RankOptions tweak ranking.
type RankOptions struct {
	// ExactRecency orders by the parsed age of the label instead of the
	// min/h/other bucket heuristic.
	ExactRecency bool
}

// Rank returns the snapshot's posts in the requested order. The snapshot is
// not modified.
func Rank(s Snapshot, order Order, opts RankOptions) []models.Post {
	posts := s.Posts()
	switch order {
	case OrderPopular:
		slices.SortStableFunc(posts, comparePopular)
	default:
		if opts.ExactRecency {
			slices.SortStableFunc(posts, compareRecentExact)
		} else {
			slices.SortStableFunc(posts, compareRecent)
		}
	}
	return posts
}

// SortRecent orders pinned posts first, then by recency bucket.
func SortRecent(posts []models.Post) []models.Post {
	return Rank(NewSnapshot(posts), OrderRecent, RankOptions{})
}

// SortPopular orders pinned posts first, then by like count, descending.
func SortPopular(posts []models.Post) []models.Post {
	return Rank(NewSnapshot(posts), OrderPopular, RankOptions{})
}

func comparePinned(a, b models.Post) int {
	switch {
	case a.IsPinned && !b.IsPinned:
		return -1
	case !a.IsPinned && b.IsPinned:
		return 1
	}
	return 0
}

func compareRecent(a, b models.Post) int {
	if c := comparePinned(a, b); c != 0 {
		return c
	}
	return cmp.Compare(recencyBucket(a.Time), recencyBucket(b.Time))
}

func compareRecentExact(a, b models.Post) int {
	if c := comparePinned(a, b); c != 0 {
		return c
	}
	ageA, okA := ParseAge(a.Time)
	ageB, okB := ParseAge(b.Time)
	switch {
	case okA && okB:
		return cmp.Compare(ageA, ageB)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

func comparePopular(a, b models.Post) int {
	if c := comparePinned(a, b); c != 0 {
		return c
	}
	return cmp.Compare(b.Likes, a.Likes)
}

// Filter keeps posts whose question, location or any tag contains query,
// ignoring case. Order is preserved; an empty query keeps everything.
func Filter(posts []models.Post, query string) []models.Post {
	if query == "" {
		return posts
	}
	q := strings.ToLower(query)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Question), q) ||
		strings.Contains(strings.ToLower(p.Location), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
