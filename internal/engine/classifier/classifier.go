package classifier

import (
	"log/slog"
	"time"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/model"
)

// Classifier tags raw records with the catalog pattern that owns their code.
// It performs no I/O.
type Classifier struct {
	catalog  *catalog.Catalog
	location *time.Location
	gaps     int
}

// New creates a Classifier over c. Dates and times are rendered in loc;
// a nil loc means time.Local.
func New(c *catalog.Catalog, loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{catalog: c, location: loc}
}

// Classify returns the event for raw tagged with the first catalog pattern
// containing its code. ok is false when no pattern owns the code; that is a
// selection/catalog mismatch, so it is counted and logged but not reported.
func (c *Classifier) Classify(raw model.RawRecord) (event model.ClassifiedEvent, ok bool) {
	name, ok := c.catalog.Lookup(raw.Code)
	if !ok {
		c.gaps++
		slog.Debug("selected code has no catalog pattern", "code", raw.Code, "record", raw.RecordNumber)
		return model.ClassifiedEvent{}, false
	}
	return model.ClassifiedEvent{
		Code:      raw.Code,
		Generated: raw.Generated.In(c.location),
		Pattern:   name,
	}, true
}

// Gaps returns how many records could not be classified since the last Reset.
func (c *Classifier) Gaps() int {
	return c.gaps
}

// Reset zeroes the gap counter.
func (c *Classifier) Reset() {
	c.gaps = 0
}
