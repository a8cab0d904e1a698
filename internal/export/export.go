// Package export turns the filtered event view into numbered rows and
// serialises them as text, CSV, NDJSON, XLSX or PDF.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/hejijunhao/seclog/internal/model"
)

// Title heads the text and PDF renderings.
const Title = "Suspicious Event Log"

// Header names the tabular columns, in order.
var Header = []string{"No", "Event ID", "Date", "Time", "Type"}

// Row is one exported event. Index is 1-based over the exported sequence.
type Row struct {
	Index   int    `json:"no"`
	Code    uint32 `json:"event_id"`
	Date    string `json:"date"` // DD-MM-YYYY
	Time    string `json:"time"` // HH:MM:SS
	Pattern string `json:"type"`
}

// Rows numbers events from 1 in their given order.
func Rows(events []model.ClassifiedEvent) []Row {
	rows := make([]Row, len(events))
	for i, e := range events {
		rows[i] = Row{
			Index:   i + 1,
			Code:    e.Code,
			Date:    e.Date(),
			Time:    e.Time(),
			Pattern: e.Pattern,
		}
	}
	return rows
}

// Line renders a row the way the text and PDF encoders print it.
func Line(r Row) string {
	return fmt.Sprintf("No: %d | ID: %d | Date: %s | Time: %s | Type: %s", r.Index, r.Code, r.Date, r.Time, r.Pattern)
}

// Encoder serialises a full row sequence to w.
type Encoder interface {
	Encode(w io.Writer, rows []Row) error
	// Extension is the file extension, without the dot.
	Extension() string
}

var encoders = map[string]Encoder{
	"txt":    Text{},
	"csv":    CSV{},
	"ndjson": NDJSON{},
	"xlsx":   XLSX{},
	"pdf":    PDF{},
}

// Get returns the encoder for format.
func Get(format string) (Encoder, error) {
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
	return enc, nil
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
