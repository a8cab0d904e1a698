package pipeline

import (
	"errors"
	"sync"
	"time"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/model"
)

// --- fakes ---

// scriptedLog returns its batches in order, then empty batches. failAt >= 0
// makes that read fail instead. onRead runs before each read, outside the lock.
type scriptedLog struct {
	mu      sync.Mutex
	batches [][]model.RawRecord
	failAt  int
	failErr error
	reads   int
	closed  int
	onRead  func(read int)
}

func (l *scriptedLog) ReadBatch() ([]model.RawRecord, error) {
	l.mu.Lock()
	n := l.reads
	l.reads++
	hook := l.onRead
	l.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed > 0 {
		return nil, eventlog.ErrClosed
	}
	if n == l.failAt {
		return nil, l.failErr
	}
	if n < len(l.batches) {
		return l.batches[n], nil
	}
	return nil, nil
}

func (l *scriptedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed++
	return nil
}

func (l *scriptedLog) Closed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *scriptedLog) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}

type fakeOpener struct {
	log      *scriptedLog
	err      error
	opened   int
	channels []string
}

func (o *fakeOpener) Open(channel string) (eventlog.Log, error) {
	o.opened++
	o.channels = append(o.channels, channel)
	if o.err != nil {
		return nil, o.err
	}
	return o.log, nil
}

func newScripted(batches ...[]model.RawRecord) *scriptedLog {
	return &scriptedLog{batches: batches, failAt: -1}
}

func rec(code uint32, ts string) model.RawRecord {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.RawRecord{Code: code, Generated: t}
}

func scenarioCatalog() *catalog.Catalog {
	c, err := catalog.New([]model.Pattern{
		{Name: "Create User", Codes: []uint32{4720, 4722}},
		{Name: "Logon Failure", Codes: []uint32{4625}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func scenarioRecords() []model.RawRecord {
	return []model.RawRecord{
		rec(4625, "2024-01-10T09:00:00Z"),
		rec(4720, "2024-01-11T10:00:00Z"),
	}
}

var errDisk = errors.New("device not ready")
