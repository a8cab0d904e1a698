package seclog

import (
	"time"

	"github.com/hejijunhao/seclog/internal/config"
	"github.com/hejijunhao/seclog/internal/model"
)

type options struct {
	provider    string
	channel     string
	replayFile  string
	batchSize   int
	bufferSize  int
	catalogFile string
	patterns    []Pattern
	location    *time.Location
}

// Option configures a Scanner.
type Option func(*options)

// WithChannel sets the log channel to read. Default: "Security".
func WithChannel(name string) Option {
	return func(o *options) {
		o.channel = name
	}
}

// WithProvider selects the eventlog backend by name ("wineventlog", "replay").
// Default: wineventlog on Windows, replay elsewhere.
func WithProvider(name string) Option {
	return func(o *options) {
		o.provider = name
	}
}

// WithReplayFile reads records from an NDJSON dump instead of the live log.
// Implies the replay provider unless one is set explicitly.
func WithReplayFile(path string) Option {
	return func(o *options) {
		o.replayFile = path
	}
}

// WithBatchSize sets how many records the replay provider returns per batch.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithReadBuffer sets the initial native read buffer in bytes.
func WithReadBuffer(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithCatalogFile loads the pattern catalog from a YAML file.
func WithCatalogFile(path string) Option {
	return func(o *options) {
		o.catalogFile = path
	}
}

// WithPatterns replaces the built-in catalog. Earlier patterns win codes
// that appear more than once.
func WithPatterns(p []Pattern) Option {
	return func(o *options) {
		o.patterns = p
	}
}

// WithLocation sets the zone used for Event.Date and Event.Time.
// Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

func defaultOptions() options {
	return options{
		channel:   "Security",
		batchSize: 64,
		location:  time.Local,
	}
}

// resolveProvider picks the backend: explicit name, then replay when a dump
// is configured, then the platform default.
func resolveProvider(o options) string {
	if o.provider != "" {
		return o.provider
	}
	if o.replayFile != "" {
		return "replay"
	}
	return config.DefaultProvider()
}

func toInternal(patterns []Pattern) []model.Pattern {
	out := make([]model.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = model.Pattern{Name: p.Name, Codes: append([]uint32(nil), p.Codes...)}
	}
	return out
}

func fromInternal(patterns []model.Pattern) []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = Pattern{Name: p.Name, Codes: append([]uint32(nil), p.Codes...)}
	}
	return out
}
