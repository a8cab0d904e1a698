//go:build windows

package wineventlog

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/model"
)

const (
	eventlogSequentialRead = 0x0001
	eventlogBackwardsRead  = 0x0008

	defaultBufferSize = 64 * 1024
)

var (
	advapi32          = windows.NewLazySystemDLL("advapi32.dll")
	procOpenEventLogW = advapi32.NewProc("OpenEventLogW")
	procReadEventLogW = advapi32.NewProc("ReadEventLogW")
	procCloseEventLog = advapi32.NewProc("CloseEventLog")
)

func init() {
	eventlog.Register("wineventlog", func(cfg eventlog.Config) (eventlog.Opener, error) {
		size := cfg.BufferSize
		if size <= 0 {
			size = defaultBufferSize
		}
		return &Opener{bufferSize: size}, nil
	})
}

// Opener opens channels on the local machine.
type Opener struct {
	bufferSize int
}

// Open acquires a read handle on channel.
func (o *Opener) Open(channel string) (eventlog.Log, error) {
	name, err := windows.UTF16PtrFromString(channel)
	if err != nil {
		return nil, fmt.Errorf("wineventlog: channel name: %w", err)
	}
	r, _, callErr := procOpenEventLogW.Call(0, uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return nil, fmt.Errorf("wineventlog: OpenEventLogW: %w", callErr)
	}
	return &Log{
		handle:  windows.Handle(r),
		channel: channel,
		buf:     make([]byte, o.bufferSize),
	}, nil
}

// Log reads one channel backwards, one buffer of records per batch.
type Log struct {
	mu      sync.Mutex
	handle  windows.Handle
	channel string
	buf     []byte
	closed  bool
}

// ReadBatch returns the records that fit in one ReadEventLogW call.
// ERROR_HANDLE_EOF ends the log with an empty batch; a buffer too small for
// the next record is grown to the size the API asks for.
func (l *Log) ReadBatch() ([]model.RawRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, eventlog.ErrClosed
	}

	for {
		var read, needed uint32
		r, _, callErr := procReadEventLogW.Call(
			uintptr(l.handle),
			uintptr(eventlogSequentialRead|eventlogBackwardsRead),
			0,
			uintptr(unsafe.Pointer(&l.buf[0])),
			uintptr(len(l.buf)),
			uintptr(unsafe.Pointer(&read)),
			uintptr(unsafe.Pointer(&needed)),
		)
		if r != 0 {
			recs, err := decodeRecords(l.buf[:read])
			if err != nil {
				return nil, fmt.Errorf("wineventlog: %s: %w", l.channel, err)
			}
			return recs, nil
		}

		switch {
		case errors.Is(callErr, windows.ERROR_HANDLE_EOF):
			return nil, nil
		case errors.Is(callErr, windows.ERROR_INSUFFICIENT_BUFFER) && int(needed) > len(l.buf):
			l.buf = make([]byte, needed)
		default:
			return nil, fmt.Errorf("wineventlog: ReadEventLogW %s: %w", l.channel, callErr)
		}
	}
}

// Close releases the handle. Later ReadBatch calls return eventlog.ErrClosed.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if r, _, callErr := procCloseEventLog.Call(uintptr(l.handle)); r == 0 {
		return fmt.Errorf("wineventlog: CloseEventLog %s: %w", l.channel, callErr)
	}
	return nil
}
