package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/engine/classifier"
	"github.com/hejijunhao/seclog/internal/engine/filter"
	"github.com/hejijunhao/seclog/internal/engine/selection"
	"github.com/hejijunhao/seclog/internal/engine/store"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/export"
	"github.com/hejijunhao/seclog/internal/model"
)

// LoadResult summarises one load pass.
type LoadResult struct {
	ID       uuid.UUID
	Channel  string
	Batches  int
	Read     int // records read from the log
	Kept     int // records classified and stored
	Gaps     int // selected records no pattern owns
	Duration time.Duration
}

// Session owns the catalog, selection, event store and current filter for
// one viewer. Methods are safe to call from a UI goroutine while Load runs
// on another; the log read itself happens without holding the lock.
type Session struct {
	reader     *Reader
	catalog    *catalog.Catalog
	classifier *classifier.Classifier

	mu        sync.Mutex
	selection *selection.Set
	store     *store.Store
	criteria  filter.Criteria
	filtered  []model.ClassifiedEvent
	active    eventlog.Log
	loading   bool
}

// NewSession creates a Session reading through r and classifying against cat.
// Every catalog code starts enabled. loc sets the zone used for dates and
// times; nil means time.Local.
func NewSession(r *Reader, cat *catalog.Catalog, loc *time.Location) *Session {
	return &Session{
		reader:     r,
		catalog:    cat,
		classifier: classifier.New(cat, loc),
		selection:  selection.FromCatalog(cat),
		store:      store.New(),
	}
}

// Load replaces the event store with a fresh read of the channel and
// re-applies the current criteria.
//
// A *ConnectionError leaves the store untouched. A *ReadError replaces the
// store with whatever was read before the failure.
func (s *Session) Load(ctx context.Context) (LoadResult, error) {
	res := LoadResult{ID: uuid.New(), Channel: s.reader.Channel()}
	start := time.Now()
	logger := slog.With("load_id", res.ID.String(), "channel", res.Channel)

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return res, ErrLoadInProgress
	}
	s.loading = true
	sel := s.selection.Clone()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	log, err := s.reader.Connect()
	if err != nil {
		logger.Error("event log connect failed", "error", err)
		return res, err
	}
	s.setActive(log)
	defer func() {
		s.setActive(nil)
		if cerr := s.reader.Disconnect(log); cerr != nil {
			logger.Warn("event log close failed", "error", cerr)
		}
	}()

	s.classifier.Reset()
	var events []model.ClassifiedEvent
	stats, readErr := s.reader.ReadAll(ctx, log, sel, func(raw model.RawRecord) {
		if ev, ok := s.classifier.Classify(raw); ok {
			events = append(events, ev)
		}
	})

	res.Batches = stats.Batches
	res.Read = stats.Read
	res.Kept = len(events)
	res.Gaps = s.classifier.Gaps()
	res.Duration = time.Since(start)

	s.mu.Lock()
	s.store.Replace(events)
	s.filtered = filter.Apply(events, s.criteria)
	s.mu.Unlock()

	attrs := []any{
		"batches", res.Batches, "read", res.Read, "kept", res.Kept,
		"gaps", res.Gaps, "duration", res.Duration,
	}
	if readErr != nil {
		logger.Error("event log read stopped early", append(attrs, "error", readErr)...)
		return res, readErr
	}
	logger.Info("event log loaded", attrs...)
	return res, nil
}

// Abort closes the handle of an in-flight Load. The load ends with a
// *ReadError wrapping eventlog.ErrClosed and keeps its partial result.
// It reports whether a load was running.
func (s *Session) Abort() bool {
	s.mu.Lock()
	log := s.active
	s.mu.Unlock()
	if log == nil {
		return false
	}
	if err := log.Close(); err != nil {
		slog.Warn("abort: event log close failed", "error", err)
	}
	return true
}

func (s *Session) setActive(log eventlog.Log) {
	s.mu.Lock()
	s.active = log
	s.mu.Unlock()
}

// Enable accepts code on the next Load. The current store is unchanged.
func (s *Session) Enable(code uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Enable(code)
}

// Disable drops code on the next Load. The current store is unchanged.
func (s *Session) Disable(code uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Disable(code)
}

// IsEnabled reports whether code will be accepted on the next Load.
func (s *Session) IsEnabled(code uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsEnabled(code)
}

// EnabledCodes returns the selected codes, ascending.
func (s *Session) EnabledCodes() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Codes()
}

// CatalogEntries lists every (pattern, code) pair for building a checklist.
func (s *Session) CatalogEntries() []model.CatalogEntry {
	return s.catalog.Entries()
}

// Events returns the full event store in read order.
func (s *Session) Events() []model.ClassifiedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Events()
}

// Apply sets the criteria and returns the matching events in store order.
func (s *Session) Apply(c filter.Criteria) []model.ClassifiedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.filtered = filter.Apply(s.store.Events(), c)
	return cloneEvents(s.filtered)
}

// Criteria returns the criteria last passed to Apply.
func (s *Session) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Filtered returns the events matching the current criteria.
func (s *Session) Filtered() []model.ClassifiedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEvents(s.filtered)
}

// Rows returns the filtered events numbered for export.
func (s *Session) Rows() []export.Row {
	return export.Rows(s.Filtered())
}

func cloneEvents(events []model.ClassifiedEvent) []model.ClassifiedEvent {
	cp := make([]model.ClassifiedEvent, len(events))
	copy(cp, events)
	return cp
}

// IsConnectionError reports whether err came from opening the log.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsReadError reports whether err came from a batch read.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}
