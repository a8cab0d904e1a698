package eventlog

import (
	"errors"

	"github.com/hejijunhao/seclog/internal/model"
)

// ErrClosed is returned by ReadBatch once the log has been closed,
// including when another goroutine closed it mid-pass.
var ErrClosed = errors.New("eventlog: log closed")

// Log is an open, exclusively owned handle on one event log channel.
type Log interface {
	// ReadBatch returns the next batch of records not yet read, most recent
	// first. An empty batch with a nil error means the end of the log.
	// Records returned alongside a non-nil error are ignored by callers.
	ReadBatch() ([]model.RawRecord, error)

	// Close releases the handle. It is safe to call more than once and
	// concurrently with ReadBatch.
	Close() error
}

// Opener acquires Log handles for named channels ("Security", "System", ...).
type Opener interface {
	Open(channel string) (Log, error)
}

// Config holds provider-specific settings.
type Config struct {
	Provider   string
	Path       string // replay: NDJSON dump to read
	BatchSize  int    // replay: records per batch
	BufferSize int    // wineventlog: initial read buffer in bytes
}
