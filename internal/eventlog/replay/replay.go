// Package replay serves event records from an NDJSON dump so the engine can
// run on hosts without a Windows event log. Each line is one record:
//
//	{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z","record_number":1001,"channel":"Security"}
//
// Lines are expected newest first, matching a backward read of a live log.
// A line without a channel belongs to every channel.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/model"
)

const defaultBatchSize = 64

func init() {
	eventlog.Register("replay", func(cfg eventlog.Config) (eventlog.Opener, error) {
		return New(cfg.Path, cfg.BatchSize)
	})
}

// Opener opens the configured dump for any channel.
type Opener struct {
	path      string
	batchSize int
}

// New creates an Opener for path. batchSize <= 0 selects the default.
func New(path string, batchSize int) (*Opener, error) {
	if path == "" {
		return nil, errors.New("replay: no dump file configured")
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Opener{path: path, batchSize: batchSize}, nil
}

// Open opens the dump and filters it to channel.
func (o *Opener) Open(channel string) (eventlog.Log, error) {
	f, err := os.Open(o.path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return &Log{
		f:         f,
		sc:        bufio.NewScanner(f),
		channel:   channel,
		batchSize: o.batchSize,
	}, nil
}

type line struct {
	EventID       *uint32   `json:"event_id"`
	TimeGenerated time.Time `json:"time_generated"`
	RecordNumber  uint32    `json:"record_number"`
	Source        string    `json:"source"`
	Channel       string    `json:"channel"`
}

// Log streams one dump file in fixed-size batches.
type Log struct {
	mu        sync.Mutex
	f         *os.File
	sc        *bufio.Scanner
	channel   string
	batchSize int
	lineNo    int
	closed    bool
}

// ReadBatch returns up to batchSize records for the log's channel.
func (l *Log) ReadBatch() ([]model.RawRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, eventlog.ErrClosed
	}

	var batch []model.RawRecord
	for len(batch) < l.batchSize && l.sc.Scan() {
		l.lineNo++
		text := l.sc.Bytes()
		if len(text) == 0 {
			continue
		}
		var ln line
		if err := json.Unmarshal(text, &ln); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", l.lineNo, err)
		}
		if ln.EventID == nil {
			return nil, fmt.Errorf("replay: line %d: missing event_id", l.lineNo)
		}
		if ln.Channel != "" && ln.Channel != l.channel {
			continue
		}
		batch = append(batch, model.RawRecord{
			Code:         *ln.EventID,
			Generated:    ln.TimeGenerated,
			RecordNumber: ln.RecordNumber,
			Source:       ln.Source,
		})
	}
	if err := l.sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: line %d: %w", l.lineNo+1, err)
	}
	return batch, nil
}

// Close closes the dump file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.f.Close()
}
