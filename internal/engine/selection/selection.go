package selection

import (
	"slices"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
)

// Set holds the event codes accepted by the next read pass.
// Not safe for concurrent use; the owning session serialises access.
type Set struct {
	codes map[uint32]struct{}
}

// NewSet creates a Set containing the given codes.
func NewSet(codes ...uint32) *Set {
	s := &Set{codes: make(map[uint32]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

// FromCatalog creates a Set with every code in c enabled.
func FromCatalog(c *catalog.Catalog) *Set {
	return NewSet(c.Codes()...)
}

// Enable adds code to the set.
func (s *Set) Enable(code uint32) {
	s.codes[code] = struct{}{}
}

// Disable removes code from the set. Disabling an absent code is a no-op.
func (s *Set) Disable(code uint32) {
	delete(s.codes, code)
}

// IsEnabled reports whether code is in the set.
func (s *Set) IsEnabled(code uint32) bool {
	_, ok := s.codes[code]
	return ok
}

// Codes returns the enabled codes, ascending.
func (s *Set) Codes() []uint32 {
	out := make([]uint32, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of enabled codes.
func (s *Set) Len() int {
	return len(s.codes)
}

// Clone returns an independent copy, used to snapshot the set for a read pass.
func (s *Set) Clone() *Set {
	return NewSet(s.Codes()...)
}
