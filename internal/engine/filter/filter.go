// Package filter narrows a sequence of classified events by free text and an
// inclusive date range. It never reorders or mutates its input.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hejijunhao/seclog/internal/model"
)

// Criteria selects events for display or export.
// A zero Start or End leaves that side of the range open.
type Criteria struct {
	Search string    // case-insensitive substring; empty matches everything
	Start  time.Time // inclusive, compared by calendar date
	End    time.Time // inclusive, compared by calendar date
}

// Apply returns the events matching c, in their original order.
func Apply(events []model.ClassifiedEvent, c Criteria) []model.ClassifiedEvent {
	m := newMatcher(c)
	out := make([]model.ClassifiedEvent, 0, len(events))
	for _, e := range events {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether a single event satisfies c.
func Matches(e model.ClassifiedEvent, c Criteria) bool {
	return newMatcher(c).match(e)
}

// ParseDate parses a DD-MM-YYYY date. An empty string yields the zero time,
// which Criteria treats as an open bound.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want DD-MM-YYYY", s)
	}
	return t, nil
}

// Haystack is the text the search string is matched against:
// code, date, time and pattern joined by single spaces.
func Haystack(e model.ClassifiedEvent) string {
	return strconv.FormatUint(uint64(e.Code), 10) + " " + e.Date() + " " + e.Time() + " " + e.Pattern
}

type matcher struct {
	lower  cases.Caser
	needle string
	start  int // YYYYMMDD, 0 = open
	end    int // YYYYMMDD, 0 = open
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{lower: cases.Lower(language.Und)}
	m.needle = m.lower.String(c.Search)
	if !c.Start.IsZero() {
		m.start = model.DayOf(c.Start)
	}
	if !c.End.IsZero() {
		m.end = model.DayOf(c.End)
	}
	return m
}

func (m *matcher) match(e model.ClassifiedEvent) bool {
	day := e.Day()
	if m.start != 0 && day < m.start {
		return false
	}
	if m.end != 0 && day > m.end {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.lower.String(Haystack(e)), m.needle)
}
