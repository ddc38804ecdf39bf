package feed

import (
	"fachnmchi/internal/models"
)

// PinnedUntilLabel is shown on freshly pinned posts. Pins never expire on
// their own; the label is display-only.
const PinnedUntilLabel = "10 minutes"

// ToggleLike flips a post's liked flag and moves its like count by one.
// The count never goes below zero. Unknown ids return s unchanged.
func ToggleLike(s Snapshot, id string) (Snapshot, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	p := clonePost(s.posts[i])
	if p.IsLiked {
		p.IsLiked = false
		if p.Likes > 0 {
			p.Likes--
		}
	} else {
		p.IsLiked = true
		p.Likes++
	}
	return s.with(i, p), true
}

// TogglePin flips a post's pinned flag. Pinning sets PinnedUntilLabel,
// unpinning clears it. Unknown ids return s unchanged.
func TogglePin(s Snapshot, id string) (Snapshot, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	p := clonePost(s.posts[i])
	p.IsPinned = !p.IsPinned
	if p.IsPinned {
		p.PinnedUntil = PinnedUntilLabel
	} else {
		p.PinnedUntil = ""
	}
	return s.with(i, p), true
}

// MarkShared records that a post was shared. Sharing twice is not an error
// but reports no change. Unknown ids return s unchanged.
func MarkShared(s Snapshot, id string) (Snapshot, bool) {
	i := s.indexOf(id)
	if i < 0 || s.posts[i].IsShared {
		return s, false
	}
	p := clonePost(s.posts[i])
	p.IsShared = true
	return s.with(i, p), true
}

// Prepend puts a new post at the head of the collection. A post whose id is
// already present is rejected.
func Prepend(s Snapshot, post models.Post) (Snapshot, bool) {
	if s.indexOf(post.ID) >= 0 {
		return s, false
	}
	posts := make([]models.Post, 0, len(s.posts)+1)
	posts = append(posts, post)
	posts = append(posts, s.posts...)
	return NewSnapshot(posts), true
}

// PinNotice is the message shown after toggling a pin, given the state the
// post was in before the toggle.
func PinNotice(wasPinned bool) models.Notice {
	if wasPinned {
		return models.NewNotice("", "Le post n'est plus épinglé.")
	}
	return models.NewNotice("", "Le post sera épinglé pendant 10 minutes.")
}

// ActionKind names a feed mutation.
type ActionKind string

const (
	ActionLike   ActionKind = "like"
	ActionPin    ActionKind = "pin"
	ActionShare  ActionKind = "share"
	ActionCreate ActionKind = "create"
)

// Action is a mutation request for Reduce.
type Action struct {
	Kind   ActionKind
	PostID string
	// Post carries the new post for ActionCreate.
	Post *models.Post
}

// Reduce applies a to s and reports whether anything changed.
func Reduce(s Snapshot, a Action) (Snapshot, bool) {
	switch a.Kind {
	case ActionLike:
		return ToggleLike(s, a.PostID)
	case ActionPin:
		return TogglePin(s, a.PostID)
	case ActionShare:
		return MarkShared(s, a.PostID)
	case ActionCreate:
		if a.Post == nil {
			return s, false
		}
		return Prepend(s, *a.Post)
	}
	return s, false
}
