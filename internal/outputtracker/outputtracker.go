// Package outputtracker records values emitted by a component so tests can
// inspect what would have been written.
package outputtracker

import "sync"

// Tracker accumulates tracked values.
type Tracker[T any] struct {
	mu     sync.Mutex
	output []T
}

// New returns an empty Tracker.
func New[T any]() *Tracker[T] {
	return &Tracker[T]{}
}

// Add records value.
func (t *Tracker[T]) Add(value T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.output = append(t.output, value)
}

// Data returns a copy of the recorded values.
func (t *Tracker[T]) Data() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T{}, t.output...)
}

// Flush returns the recorded values and clears them.
func (t *Tracker[T]) Flush() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := append([]T{}, t.output...)
	t.output = nil
	return out
}

// Listener forwards every tracked value to its trackers.
type Listener[T any] struct {
	mu       sync.RWMutex
	trackers []*Tracker[T]
}

// NewListener returns a Listener without trackers.
func NewListener[T any]() *Listener[T] {
	return &Listener[T]{}
}

// Track hands value to every registered tracker. Without trackers it is a no-op.
func (l *Listener[T]) Track(value T) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tracker := range l.trackers {
		tracker.Add(value)
	}
}

// AddTracker registers tracker.
func (l *Listener[T]) AddTracker(tracker *Tracker[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trackers = append(l.trackers, tracker)
}

// NewTracker creates a tracker, registers it and returns it.
func (l *Listener[T]) NewTracker() *Tracker[T] {
	tracker := New[T]()
	l.AddTracker(tracker)
	return tracker
}
