package seclog

import "github.com/hejijunhao/seclog/internal/engine/catalog"

// Pattern is a named group of event codes.
type Pattern struct {
	Name  string
	Codes []uint32
}

// DefaultPatterns returns the built-in catalog in declaration order.
func DefaultPatterns() []Pattern {
	return fromInternal(catalog.DefaultPatterns())
}

// Catalog returns the patterns this scanner classifies against. The result
// is a copy.
func (s *Scanner) Catalog() []Pattern {
	return fromInternal(s.catalog.Patterns())
}
