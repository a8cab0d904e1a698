package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hejijunhao/seclog/internal/model"
)

func TestLookupFirstMatchWins(t *testing.T) {
	c, err := New([]model.Pattern{
		{Name: "Service Terminated Unexpectedly", Codes: []uint32{7034}},
		{Name: "Service Failure", Codes: []uint32{7031, 7034}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		code uint32
		want string
		ok   bool
	}{
		{7034, "Service Terminated Unexpectedly", true},
		{7031, "Service Failure", true},
		{4625, "", false},
	}
	for _, tt := range tests {
		got, ok := c.Lookup(tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%d) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewRejectsInvalidPatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns []model.Pattern
		wantErr  string
	}{
		{"empty name", []model.Pattern{{Name: "", Codes: []uint32{1}}}, "empty name"},
		{"no codes", []model.Pattern{{Name: "A"}}, "no event codes"},
		{"duplicate", []model.Pattern{
			{Name: "A", Codes: []uint32{1}},
			{Name: "A", Codes: []uint32{2}},
		}, "declared more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.patterns)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	patterns := []model.Pattern{{Name: "A", Codes: []uint32{1, 2}}}
	c, err := New(patterns)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	patterns[0].Codes[0] = 99

	if _, ok := c.Lookup(99); ok {
		t.Error("catalog changed after caller mutated its input")
	}
	got := c.Patterns()
	got[0].Codes[1] = 42
	if _, ok := c.Lookup(2); !ok {
		t.Error("catalog changed after caller mutated Patterns() result")
	}
}

func TestEntriesKeepsDeclarationOrderAndDuplicates(t *testing.T) {
	c, err := New([]model.Pattern{
		{Name: "Create User", Codes: []uint32{4720, 4722}},
		{Name: "Logon Failure", Codes: []uint32{4625}},
		{Name: "Logon Failed", Codes: []uint32{4625}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := []model.CatalogEntry{
		{Pattern: "Create User", Code: 4720},
		{Pattern: "Create User", Code: 4722},
		{Pattern: "Logon Failure", Code: 4625},
		{Pattern: "Logon Failed", Code: 4625},
	}
	got := c.Entries()
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	codes := c.Codes()
	wantCodes := []uint32{4625, 4720, 4722}
	if len(codes) != len(wantCodes) {
		t.Fatalf("Codes() = %v, want %v", codes, wantCodes)
	}
	for i := range wantCodes {
		if codes[i] != wantCodes[i] {
			t.Errorf("Codes()[%d] = %d, want %d", i, codes[i], wantCodes[i])
		}
	}
}

func TestDefaultPatterns(t *testing.T) {
	c := Default()

	if c.Len() != 37 {
		t.Errorf("expected 37 patterns, got %d", c.Len())
	}
	if n := len(c.Entries()); n != 70 {
		t.Errorf("expected 70 entries, got %d", n)
	}
	if n := len(c.Codes()); n != 63 {
		t.Errorf("expected 63 distinct codes, got %d", n)
	}

	// Overlapping codes resolve to their earliest declaration.
	overlaps := map[uint32]string{
		7030: "Create Service",
		4724: "Create User",
		4663: "Insert USB",
		2:    "EMET",
		4625: "Logon Failed",
		7034: "Service Terminated Unexpectedly",
		7036: "Service Start / Stop",
	}
	for code, want := range overlaps {
		if got, _ := c.Lookup(code); got != want {
			t.Errorf("Lookup(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `patterns:
  - name: Logon Failure
    codes: [4625]
  - name: Create User
    codes: [4720, 4722]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 patterns, got %d", c.Len())
	}
	if got := c.Patterns()[0].Name; got != "Logon Failure" {
		t.Errorf("first pattern = %q, want Logon Failure", got)
	}
	if got, _ := c.Lookup(4722); got != "Create User" {
		t.Errorf("Lookup(4722) = %q, want Create User", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse([]byte("patterns: []\n")); err == nil {
		t.Error("expected error for empty pattern list")
	}
	if _, err := Parse([]byte("patterns: [unterminated\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := Parse([]byte("patterns:\n  - name: A\n    codes: [-1]\n")); err == nil {
		t.Error("expected error for negative code")
	}
}
