package store

import "github.com/hejijunhao/seclog/internal/model"

// Store holds the classified events of the most recent load, in read order
// (most recent first for a backward read). It is replaced wholesale on each
// load and never merged.
type Store struct {
	events []model.ClassifiedEvent
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Replace swaps the contents for events. The store takes ownership of the slice.
func (s *Store) Replace(events []model.ClassifiedEvent) {
	s.events = events
}

// Events returns a copy of the stored events.
func (s *Store) Events() []model.ClassifiedEvent {
	cp := make([]model.ClassifiedEvent, len(s.events))
	copy(cp, s.events)
	return cp
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}
