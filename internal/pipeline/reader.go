package pipeline

import (
	"context"

	"github.com/hejijunhao/seclog/internal/engine/selection"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/model"
)

// Reader drives the connect / read-all / disconnect protocol over one channel.
type Reader struct {
	opener  eventlog.Opener
	channel string
}

// ReadStats summarises one ReadAll pass.
type ReadStats struct {
	Batches  int // non-empty batches returned
	Read     int // records seen
	Selected int // records whose code was in the selection
}

// NewReader creates a Reader for channel.
func NewReader(opener eventlog.Opener, channel string) *Reader {
	return &Reader{opener: opener, channel: channel}
}

// Channel returns the channel name the Reader opens.
func (r *Reader) Channel() string {
	return r.channel
}

// Connect opens the channel. Failures are returned as *ConnectionError.
func (r *Reader) Connect() (eventlog.Log, error) {
	log, err := r.opener.Open(r.channel)
	if err != nil {
		return nil, &ConnectionError{Channel: r.channel, Err: err}
	}
	return log, nil
}

// Disconnect closes a handle returned by Connect.
func (r *Reader) Disconnect(log eventlog.Log) error {
	return log.Close()
}

// ReadAll reads batches until one comes back empty and passes every record
// whose code is in sel to fn, in read order. Records outside sel are dropped
// here and never reach fn.
//
// A failed batch read, a closed handle, or a cancelled ctx ends the loop
// with a *ReadError; records already passed to fn stay delivered.
func (r *Reader) ReadAll(ctx context.Context, log eventlog.Log, sel *selection.Set, fn func(model.RawRecord)) (ReadStats, error) {
	var stats ReadStats
	for batch := 0; ; batch++ {
		if err := ctx.Err(); err != nil {
			return stats, &ReadError{Channel: r.channel, Batch: batch, Err: err}
		}
		recs, err := log.ReadBatch()
		if err != nil {
			return stats, &ReadError{Channel: r.channel, Batch: batch, Err: err}
		}
		if len(recs) == 0 {
			return stats, nil
		}
		stats.Batches++
		for _, rec := range recs {
			stats.Read++
			if !sel.IsEnabled(rec.Code) {
				continue
			}
			stats.Selected++
			fn(rec)
		}
	}
}

// Read is the scoped form of Connect, ReadAll and Disconnect: the handle is
// closed on every return path.
func (r *Reader) Read(ctx context.Context, sel *selection.Set, fn func(model.RawRecord)) (stats ReadStats, err error) {
	log, err := r.Connect()
	if err != nil {
		return ReadStats{}, err
	}
	defer func() {
		if cerr := r.Disconnect(log); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return r.ReadAll(ctx, log, sel, fn)
}
