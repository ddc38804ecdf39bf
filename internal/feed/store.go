package feed

import (
	"sync"

	"fachnmchi/internal/models"
)

// Result describes what a dispatched action did.
type Result struct {
	// Before and After are the collection before and after the action.
	Before Snapshot
	After  Snapshot
	// Post is the affected post as it is after the action, if it exists.
	Post    models.Post
	Found   bool
	Changed bool
	Version uint64
}

// Store owns the authoritative post collection. Reads hand out the current
// immutable Snapshot; writes are serialized through Dispatch.
type Store struct {
	// write serializes writers, including their persistence step. mu only
	// guards the swap so readers never wait on storage.
	write   sync.Mutex
	mu      sync.RWMutex
	snap    Snapshot
	version uint64
}

// PersistFunc writes the post an action produced. A non-nil error discards
// the action.
type PersistFunc func(post models.Post) error

// NewStore creates a store seeded with posts.
func NewStore(posts []models.Post) *Store {
	return &Store{snap: NewSnapshot(posts)}
}

// Snapshot returns the current collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Version increases by one for every action that changed the collection.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies an action. Unknown ids leave the collection untouched.
func (s *Store) Dispatch(a Action) Result {
	res, _ := s.DispatchWith(a, nil)
	return res
}

// DispatchWith applies an action and, when it changed something, calls
// persist before the new collection becomes visible. Writers are serialized
// across the persist call, so storage sees changes in the same order as
// memory. When persist fails the collection and version stay as they were.
func (s *Store) DispatchWith(a Action, persist PersistFunc) (Result, error) {
	s.write.Lock()
	defer s.write.Unlock()

	before := s.Snapshot()
	after, changed := Reduce(before, a)

	id := a.PostID
	if a.Kind == ActionCreate && a.Post != nil {
		id = a.Post.ID
	}

	if changed && persist != nil {
		post, _ := after.Find(id)
		if err := persist(post); err != nil {
			return Result{Before: before, After: before, Version: s.Version()}, err
		}
	}

	s.mu.Lock()
	if changed {
		s.snap = after
		s.version++
	}
	current, version := s.snap, s.version
	s.mu.Unlock()

	post, found := current.Find(id)
	return Result{
		Before:  before,
		After:   current,
		Post:    post,
		Found:   found,
		Changed: changed,
		Version: version,
	}, nil
}

// Replace swaps the whole collection, e.g. after loading it from storage.
// The version moves on every call, even when posts equal the current
// collection, so views cached under the old version are never served again.
func (s *Store) Replace(posts []models.Post) {
	s.write.Lock()
	defer s.write.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = NewSnapshot(posts)
	s.version++
}
