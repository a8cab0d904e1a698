package model

import "time"

// Layouts used when rendering a ClassifiedEvent's date and time.
const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04:05"
)

// ClassifiedEvent is a raw record tagged with the catalog pattern it matched.
type ClassifiedEvent struct {
	Code      uint32
	Generated time.Time // already converted to the session's display location
	Pattern   string    // first catalog pattern containing Code
}

// Date renders the calendar date as DD-MM-YYYY.
func (e ClassifiedEvent) Date() string {
	return e.Generated.Format(DateLayout)
}

// Time renders the wall-clock time as HH:MM:SS.
func (e ClassifiedEvent) Time() string {
	return e.Generated.Format(TimeLayout)
}

// Day returns the calendar date of the event as an integer YYYYMMDD,
// suitable for inclusive range comparisons.
func (e ClassifiedEvent) Day() int {
	return DayOf(e.Generated)
}

// DayOf returns t's calendar date, in t's own location, as YYYYMMDD.
func DayOf(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
