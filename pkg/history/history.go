// Package history provides a bounded, newest-first snapshot store with a
// step-back cursor.
//
// A [Store] keeps at most Capacity snapshots. [Store.Record] pushes a snapshot
// to the front, discards the oldest one on overflow, and rewinds the cursor.
// [Store.Undo] hands out the snapshot under the cursor and advances it, so
// repeated calls walk further back in time. Once the cursor passes the oldest
// retained snapshot, Undo reports false and changes nothing.
//
// There is no redo: Undo never records, and the snapshots it hands out stay
// in the store until a later Record pushes them out.
//
// A Store is not safe for concurrent use.
package history

// DefaultCapacity is the number of snapshots retained when no capacity is given.
const DefaultCapacity = 20

// Store is a bounded newest-first sequence of snapshots.
type Store[T any] struct {
	entries  []T
	cursor   int
	capacity int
}

// New creates an empty store retaining up to capacity snapshots.
// A non-positive capacity selects [DefaultCapacity].
func New[T any](capacity int) *Store[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store[T]{capacity: capacity}
}

// Record pushes v as the newest snapshot and resets the cursor to it.
func (s *Store[T]) Record(v T) {
	keep := min(len(s.entries), s.capacity-1)
	entries := make([]T, 0, keep+1)
	entries = append(entries, v)
	entries = append(entries, s.entries[:keep]...)
	s.entries = entries
	s.cursor = 0
}

// Undo returns the snapshot under the cursor and steps the cursor back.
// It returns the zero value and false when no older snapshot is retained.
func (s *Store[T]) Undo() (T, bool) {
	if s.cursor >= len(s.entries) {
		var zero T
		return zero, false
	}
	v := s.entries[s.cursor]
	s.cursor++
	return v, true
}

// Len returns the number of retained snapshots.
func (s *Store[T]) Len() int { return len(s.entries) }

// Cursor returns the index of the snapshot the next Undo will return.
func (s *Store[T]) Cursor() int { return s.cursor }

// Capacity returns the maximum number of retained snapshots.
func (s *Store[T]) Capacity() int { return s.capacity }

// Remaining returns how many more Undo calls will succeed.
func (s *Store[T]) Remaining() int { return len(s.entries) - s.cursor }

// Reset drops every snapshot.
func (s *Store[T]) Reset() {
	s.entries = nil
	s.cursor = 0
}
