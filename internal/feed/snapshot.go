// Package feed ranks and mutates the community post collection.
//
// Ranking, filtering and the like/pin/share reducers are pure functions over
// immutable Snapshots. Store owns the single authoritative Snapshot and
// applies reducers to it one at a time.
package feed

import (
	"slices"

	"fachnmchi/internal/models"
)

// Snapshot is an immutable view of the post collection, in collection order.
// Nothing in this package modifies a Snapshot after it is built.
type Snapshot struct {
	posts []models.Post
}

// NewSnapshot copies posts into a new Snapshot and numbers their positions.
func NewSnapshot(posts []models.Post) Snapshot {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = clonePost(p)
		out[i].Position = i
	}
	return Snapshot{posts: out}
}

// Len returns the number of posts.
func (s Snapshot) Len() int { return len(s.posts) }

// Posts returns a deep copy of the posts in collection order.
func (s Snapshot) Posts() []models.Post {
	out := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = clonePost(p)
	}
	return out
}

// Find looks a post up by id.
func (s Snapshot) Find(id string) (models.Post, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return clonePost(s.posts[i]), true
}

func (s Snapshot) indexOf(id string) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == id })
}

// with returns a copy of s where the post at index i is replaced by p.
func (s Snapshot) with(i int, p models.Post) Snapshot {
	out := slices.Clone(s.posts)
	out[i] = p
	return Snapshot{posts: out}
}

func clonePost(p models.Post) models.Post {
	p.Tags = slices.Clone(p.Tags)
	if p.Itinerary != nil {
		it := *p.Itinerary
		p.Itinerary = &it
	}
	return p
}
