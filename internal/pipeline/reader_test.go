package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/hejijunhao/seclog/internal/engine/selection"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/model"
)

func collect(out *[]uint32) func(model.RawRecord) {
	return func(r model.RawRecord) { *out = append(*out, r.Code) }
}

func TestReadAllStopsOnEmptyBatch(t *testing.T) {
	log := newScripted(
		[]model.RawRecord{rec(4625, "2024-01-10T09:00:00Z"), rec(4624, "2024-01-10T08:00:00Z")},
		[]model.RawRecord{rec(4720, "2024-01-09T09:00:00Z")},
	)
	r := NewReader(&fakeOpener{log: log}, "Security")

	var got []uint32
	stats, err := r.ReadAll(context.Background(), log, selection.NewSet(4625, 4720), collect(&got))
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(got) != 2 || got[0] != 4625 || got[1] != 4720 {
		t.Errorf("delivered %v, want [4625 4720]", got)
	}
	if stats.Batches != 2 || stats.Read != 3 || stats.Selected != 2 {
		t.Errorf("stats = %+v, want {Batches:2 Read:3 Selected:2}", stats)
	}
	if log.Reads() != 3 {
		t.Errorf("ReadBatch called %d times, want 3 (two batches + terminating empty read)", log.Reads())
	}
}

func TestReadAllDropsUnselectedCodes(t *testing.T) {
	log := newScripted(scenarioRecords())
	r := NewReader(&fakeOpener{log: log}, "Security")

	var got []uint32
	if _, err := r.ReadAll(context.Background(), log, selection.NewSet(4720), collect(&got)); err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(got) != 1 || got[0] != 4720 {
		t.Errorf("delivered %v, want [4720]", got)
	}
}

func TestReadAllMidLoopFailureKeepsEarlierRecords(t *testing.T) {
	log := newScripted(
		[]model.RawRecord{rec(4625, "2024-01-10T09:00:00Z")},
		[]model.RawRecord{rec(4720, "2024-01-09T09:00:00Z")},
	)
	log.failAt = 1
	log.failErr = errDisk
	r := NewReader(&fakeOpener{log: log}, "Security")

	var got []uint32
	stats, err := r.ReadAll(context.Background(), log, selection.NewSet(4625, 4720), collect(&got))

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("ReadAll() error = %v, want *ReadError", err)
	}
	if re.Batch != 1 || re.Channel != "Security" {
		t.Errorf("ReadError = %+v, want Batch 1 on Security", re)
	}
	if !errors.Is(err, errDisk) {
		t.Error("ReadError does not wrap the underlying cause")
	}
	if len(got) != 1 || got[0] != 4625 {
		t.Errorf("delivered %v, want [4625]", got)
	}
	if stats.Batches != 1 {
		t.Errorf("stats.Batches = %d, want 1", stats.Batches)
	}
}

func TestReadAllCancelledContext(t *testing.T) {
	log := newScripted(scenarioRecords())
	r := NewReader(&fakeOpener{log: log}, "Security")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadAll(ctx, log, selection.NewSet(4625), func(model.RawRecord) {})
	if !IsReadError(err) || !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadAll() error = %v, want ReadError wrapping context.Canceled", err)
	}
	if log.Reads() != 0 {
		t.Errorf("ReadBatch called %d times after cancellation", log.Reads())
	}
}

func TestReadClosesHandleOnEveryPath(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		log := newScripted(scenarioRecords())
		r := NewReader(&fakeOpener{log: log}, "Security")
		if _, err := r.Read(context.Background(), selection.NewSet(4625), func(model.RawRecord) {}); err != nil {
			t.Fatalf("Read() error: %v", err)
		}
		if log.Closed() != 1 {
			t.Errorf("Close called %d times, want 1", log.Closed())
		}
	})

	t.Run("read failure", func(t *testing.T) {
		log := newScripted()
		log.failAt = 0
		log.failErr = errDisk
		r := NewReader(&fakeOpener{log: log}, "Security")
		if _, err := r.Read(context.Background(), selection.NewSet(4625), func(model.RawRecord) {}); !IsReadError(err) {
			t.Fatalf("Read() error = %v, want ReadError", err)
		}
		if log.Closed() != 1 {
			t.Errorf("Close called %d times, want 1", log.Closed())
		}
	})

	t.Run("connect failure", func(t *testing.T) {
		op := &fakeOpener{err: errors.New("access denied")}
		r := NewReader(op, "Security")
		called := false
		_, err := r.Read(context.Background(), selection.NewSet(4625), func(model.RawRecord) { called = true })

		var ce *ConnectionError
		if !errors.As(err, &ce) {
			t.Fatalf("Read() error = %v, want *ConnectionError", err)
		}
		if ce.Channel != "Security" {
			t.Errorf("ConnectionError.Channel = %q", ce.Channel)
		}
		if called {
			t.Error("records delivered after connect failure")
		}
	})
}

func TestReadAllClosedHandle(t *testing.T) {
	log := newScripted(scenarioRecords())
	log.Close()
	r := NewReader(&fakeOpener{log: log}, "Security")

	_, err := r.ReadAll(context.Background(), log, selection.NewSet(4625), func(model.RawRecord) {})
	if !IsReadError(err) || !errors.Is(err, eventlog.ErrClosed) {
		t.Fatalf("ReadAll() error = %v, want ReadError wrapping ErrClosed", err)
	}
}

func TestConnectPassesChannel(t *testing.T) {
	op := &fakeOpener{log: newScripted()}
	r := NewReader(op, "System")
	if _, err := r.Connect(); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if len(op.channels) != 1 || op.channels[0] != "System" {
		t.Errorf("opened channels %v, want [System]", op.channels)
	}
	if r.Channel() != "System" {
		t.Errorf("Channel() = %q", r.Channel())
	}
}
