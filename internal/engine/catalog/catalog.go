package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hejijunhao/seclog/internal/model"
)

// Catalog is an immutable, ordered table of patterns.
//
// A code may belong to several patterns. Lookup answers with the first
// pattern in declaration order that lists the code.
type Catalog struct {
	patterns []model.Pattern
	owner    map[uint32]int // code -> index of first declaring pattern
}

// New validates patterns and builds a Catalog. The slice is copied, so later
// changes by the caller do not affect the Catalog.
func New(patterns []model.Pattern) (*Catalog, error) {
	c := &Catalog{
		patterns: make([]model.Pattern, 0, len(patterns)),
		owner:    make(map[uint32]int),
	}
	seen := make(map[string]bool, len(patterns))

	var errs []error
	for i, p := range patterns {
		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("pattern %d: empty name", i))
			continue
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("pattern %q: declared more than once", p.Name))
			continue
		case len(p.Codes) == 0:
			errs = append(errs, fmt.Errorf("pattern %q: no event codes", p.Name))
			continue
		}
		seen[p.Name] = true

		idx := len(c.patterns)
		c.patterns = append(c.patterns, model.Pattern{Name: p.Name, Codes: slices.Clone(p.Codes)})
		for _, code := range p.Codes {
			if _, ok := c.owner[code]; !ok {
				c.owner[code] = idx
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// Default returns a Catalog built from DefaultPatterns.
func Default() *Catalog {
	c, err := New(DefaultPatterns())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the name of the first pattern containing code.
func (c *Catalog) Lookup(code uint32) (string, bool) {
	idx, ok := c.owner[code]
	if !ok {
		return "", false
	}
	return c.patterns[idx].Name, true
}

// Patterns returns a copy of the patterns in declaration order.
func (c *Catalog) Patterns() []model.Pattern {
	out := make([]model.Pattern, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = model.Pattern{Name: p.Name, Codes: slices.Clone(p.Codes)}
	}
	return out
}

// Entries flattens the catalog into (pattern, code) pairs in declaration
// order. Codes shared between patterns appear once per pattern.
func (c *Catalog) Entries() []model.CatalogEntry {
	var out []model.CatalogEntry
	for _, p := range c.patterns {
		for _, code := range p.Codes {
			out = append(out, model.CatalogEntry{Pattern: p.Name, Code: code})
		}
	}
	return out
}

// Codes returns every distinct code in the catalog, ascending.
func (c *Catalog) Codes() []uint32 {
	out := make([]uint32, 0, len(c.owner))
	for code := range c.owner {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}
