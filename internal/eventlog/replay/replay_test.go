package replay

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hejijunhao/seclog/internal/eventlog"
)

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, l eventlog.Log) [][]uint32 {
	t.Helper()
	var batches [][]uint32
	for {
		batch, err := l.ReadBatch()
		if err != nil {
			t.Fatalf("ReadBatch() error: %v", err)
		}
		if len(batch) == 0 {
			return batches
		}
		var codes []uint32
		for _, r := range batch {
			codes = append(codes, r.Code)
		}
		batches = append(batches, codes)
	}
}

func TestReadBatchesUntilEmpty(t *testing.T) {
	path := writeDump(t,
		`{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z","record_number":5}`,
		`{"event_id":4720,"time_generated":"2024-01-10T08:00:00Z","record_number":4}`,
		``,
		`{"event_id":1102,"time_generated":"2024-01-10T07:00:00Z","record_number":3}`,
	)
	op, err := New(path, 2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l, err := op.Open("Security")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer l.Close()

	got := readAll(t, l)
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("batches = %v, want [[4625 4720] [1102]]", got)
	}
	if got[0][0] != 4625 || got[0][1] != 4720 || got[1][0] != 1102 {
		t.Errorf("batches = %v, want [[4625 4720] [1102]]", got)
	}
}

func TestReadDecodesFields(t *testing.T) {
	path := writeDump(t,
		`{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z","record_number":77,"source":"Microsoft-Windows-Security-Auditing"}`,
	)
	op, _ := New(path, 0)
	l, err := op.Open("Security")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer l.Close()

	batch, err := l.ReadBatch()
	if err != nil {
		t.Fatalf("ReadBatch() error: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("got %d records, want 1", len(batch))
	}
	r := batch[0]
	if r.RecordNumber != 77 || r.Source != "Microsoft-Windows-Security-Auditing" {
		t.Errorf("record = %+v", r)
	}
	if !r.Generated.Equal(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Generated = %v", r.Generated)
	}
}

func TestChannelFilter(t *testing.T) {
	path := writeDump(t,
		`{"event_id":7036,"time_generated":"2024-01-10T09:00:00Z","channel":"System"}`,
		`{"event_id":4625,"time_generated":"2024-01-10T08:00:00Z","channel":"Security"}`,
		`{"event_id":1102,"time_generated":"2024-01-10T07:00:00Z"}`,
	)
	op, _ := New(path, 10)
	l, err := op.Open("Security")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer l.Close()

	got := readAll(t, l)
	if len(got) != 1 || len(got[0]) != 2 || got[0][0] != 4625 || got[0][1] != 1102 {
		t.Errorf("batches = %v, want [[4625 1102]]", got)
	}
}

func TestMalformedLine(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad json", `{"event_id":`},
		{"missing event_id", `{"time_generated":"2024-01-10T09:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDump(t, `{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z"}`, tt.line)
			op, _ := New(path, 1)
			l, err := op.Open("Security")
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer l.Close()

			if _, err := l.ReadBatch(); err != nil {
				t.Fatalf("first ReadBatch() error: %v", err)
			}
			_, err = l.ReadBatch()
			if err == nil {
				t.Fatal("expected error on malformed line")
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Errorf("error %q does not name line 2", err)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	op, _ := New(filepath.Join(t.TempDir(), "nope.jsonl"), 1)
	if _, err := op.Open("Security"); err == nil {
		t.Fatal("expected error opening missing dump")
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New("", 1); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestReadAfterClose(t *testing.T) {
	path := writeDump(t, `{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z"}`)
	op, _ := New(path, 1)
	l, err := op.Open("Security")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if _, err := l.ReadBatch(); !errors.Is(err, eventlog.ErrClosed) {
		t.Errorf("ReadBatch() after Close = %v, want ErrClosed", err)
	}
}

func TestRegistered(t *testing.T) {
	path := writeDump(t, `{"event_id":4625,"time_generated":"2024-01-10T09:00:00Z"}`)
	op, err := eventlog.New(eventlog.Config{Provider: "replay", Path: path})
	if err != nil {
		t.Fatalf("eventlog.New() error: %v", err)
	}
	if _, ok := op.(*Opener); !ok {
		t.Errorf("eventlog.New() returned %T, want *Opener", op)
	}
}
