package pipeline

import (
	"errors"
	"fmt"
)

// ErrLoadInProgress is returned by Session.Load while another load is running.
var ErrLoadInProgress = errors.New("pipeline: load already in progress")

// ConnectionError means the log handle could not be opened. No records were
// read and the session's previous results are untouched.
type ConnectionError struct {
	Channel string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open %q event log: %v", e.Channel, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ReadError means a batch read failed after the handle was opened. Records
// from earlier batches are kept.
type ReadError struct {
	Channel string
	Batch   int // zero-based index of the failed read
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %q event log, batch %d: %v", e.Channel, e.Batch, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
