// Package history implements a linear undo/redo timeline over immutable
// snapshots. It knows nothing about what a snapshot contains.
package history

import "slices"

// Snapshot is a point-in-time copy of the three timeline parts. The
// sequences are fresh; the entries themselves are shared with the Store.
type Snapshot[S any] struct {
	Past    []S // oldest first
	Present S
	Future  []S // next redo first
}

// Store holds past, present and future states. The zero value is not
// usable; create one with New. A Store is not safe for concurrent use.
type Store[S any] struct {
	past    []S
	present S
	future  []S
	limit   int
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	limit int
}

// WithLimit bounds the number of undo steps kept. The oldest entries are
// dropped first. n <= 0 means unbounded, which is the default.
func WithLimit(n int) Option {
	return func(o *storeOptions) {
		o.limit = n
	}
}

// New returns a Store whose present is initial and whose past and future
// are empty.
func New[S any](initial S, opts ...Option) *Store[S] {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[S]{present: initial, limit: o.limit}
}

// Present returns the current state.
func (s *Store[S]) Present() S { return s.present }

// SetPresent replaces the present without touching past or future.
// Nothing is recorded, so the previous present cannot be restored by Undo.
func (s *Store[S]) SetPresent(next S) {
	s.present = next
}

// Commit records next as a new step: the old present moves onto the end of
// the past and the future is discarded.
func (s *Store[S]) Commit(next S) {
	s.past = append(s.past, s.present)
	if s.limit > 0 && len(s.past) > s.limit {
		s.past = slices.Delete(s.past, 0, len(s.past)-s.limit)
	}
	s.present = next
	s.future = nil
}

// Undo steps back one entry. It reports false and changes nothing when
// there is no past.
func (s *Store[S]) Undo() bool {
	if len(s.past) == 0 {
		return false
	}
	last := len(s.past) - 1
	prev := s.past[last]
	s.past = s.past[:last:last]
	s.future = slices.Insert(s.future, 0, s.present)
	s.present = prev
	return true
}

// Redo steps forward one entry. It reports false and changes nothing when
// there is no future.
func (s *Store[S]) Redo() bool {
	if len(s.future) == 0 {
		return false
	}
	next := s.future[0]
	s.future = slices.Clone(s.future[1:])
	s.past = append(s.past, s.present)
	s.present = next
	return true
}

func (s *Store[S]) CanUndo() bool { return len(s.past) > 0 }

func (s *Store[S]) CanRedo() bool { return len(s.future) > 0 }

// Len returns the number of undo and redo steps available.
func (s *Store[S]) Len() (past, future int) {
	return len(s.past), len(s.future)
}

// Previous returns the entry Undo would restore.
func (s *Store[S]) Previous() (S, bool) {
	if len(s.past) == 0 {
		var zero S
		return zero, false
	}
	return s.past[len(s.past)-1], true
}

// Snapshot copies the timeline for inspection.
func (s *Store[S]) Snapshot() Snapshot[S] {
	return Snapshot[S]{
		Past:    slices.Clone(s.past),
		Present: s.present,
		Future:  slices.Clone(s.future),
	}
}
