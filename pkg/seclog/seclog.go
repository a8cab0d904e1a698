package seclog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/engine/filter"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/export"
	"github.com/hejijunhao/seclog/internal/model"
	"github.com/hejijunhao/seclog/internal/pipeline"

	// Register eventlog backends.
	_ "github.com/hejijunhao/seclog/internal/eventlog/replay"
	_ "github.com/hejijunhao/seclog/internal/eventlog/wineventlog"
)

// ErrLoadInProgress is returned by Load while another Load is running.
var ErrLoadInProgress = pipeline.ErrLoadInProgress

// Scanner reads, classifies and filters one event log channel.
// Safe for concurrent use.
type Scanner struct {
	session *pipeline.Session
	catalog *catalog.Catalog
}

// New creates a Scanner. It resolves the eventlog backend and catalog but
// does not touch the log until Load.
func New(opts ...Option) (*Scanner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cat, err := buildCatalog(o)
	if err != nil {
		return nil, fmt.Errorf("seclog: %w", err)
	}

	op, err := eventlog.New(eventlog.Config{
		Provider:   resolveProvider(o),
		Path:       o.replayFile,
		BatchSize:  o.batchSize,
		BufferSize: o.bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("seclog: %w", err)
	}

	loc := o.location
	if loc == nil {
		loc = time.Local
	}
	return &Scanner{
		session: pipeline.NewSession(pipeline.NewReader(op, o.channel), cat, loc),
		catalog: cat,
	}, nil
}

func buildCatalog(o options) (*catalog.Catalog, error) {
	switch {
	case o.catalogFile != "":
		return catalog.LoadFile(o.catalogFile)
	case o.patterns != nil:
		return catalog.New(toInternal(o.patterns))
	default:
		return catalog.Default(), nil
	}
}

// Load reads the channel from newest to oldest and replaces the stored
// events. On a read error the events read before the failure are kept; on a
// connection error the previous events are kept.
func (s *Scanner) Load(ctx context.Context) (Summary, error) {
	res, err := s.session.Load(ctx)
	return Summary{
		ID:       res.ID.String(),
		Channel:  res.Channel,
		Read:     res.Read,
		Kept:     res.Kept,
		Gaps:     res.Gaps,
		Duration: res.Duration,
	}, err
}

// Abort ends a running Load early. It reports whether one was running.
func (s *Scanner) Abort() bool {
	return s.session.Abort()
}

// Enable includes code in the next Load.
func (s *Scanner) Enable(code uint32) { s.session.Enable(code) }

// Disable excludes code from the next Load.
func (s *Scanner) Disable(code uint32) { s.session.Disable(code) }

// IsEnabled reports whether code is included in the next Load.
func (s *Scanner) IsEnabled(code uint32) bool { return s.session.IsEnabled(code) }

// Events returns every stored event, newest first.
func (s *Scanner) Events() []Event {
	return s.toEvents(s.session.Events())
}

// Filter returns the stored events whose text contains search
// (case-insensitive) and whose date falls in [from, to]. A zero from or to
// leaves that side open. The result also becomes the export set.
func (s *Scanner) Filter(search string, from, to time.Time) []Event {
	return s.toEvents(s.session.Apply(filter.Criteria{Search: search, Start: from, End: to}))
}

// Export writes the current filter result to w in format
// ("txt", "csv", "ndjson", "xlsx", "pdf").
func (s *Scanner) Export(w io.Writer, format string) error {
	enc, err := export.Get(format)
	if err != nil {
		return err
	}
	return enc.Encode(w, s.session.Rows())
}

// IsConnectionError reports whether err means the log could not be opened.
func IsConnectionError(err error) bool { return pipeline.IsConnectionError(err) }

// IsReadError reports whether err means a read failed part-way.
func IsReadError(err error) bool { return pipeline.IsReadError(err) }

func (s *Scanner) toEvents(events []model.ClassifiedEvent) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{
			Code:      e.Code,
			Generated: e.Generated,
			Date:      e.Date(),
			Time:      e.Time(),
			Pattern:   e.Pattern,
		}
	}
	return out
}
