package selection

import (
	"testing"

	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/model"
)

func TestFromCatalogEnablesEveryCode(t *testing.T) {
	c, err := catalog.New([]model.Pattern{
		{Name: "Create User", Codes: []uint32{4720, 4722}},
		{Name: "Logon Failure", Codes: []uint32{4625}},
		{Name: "Logon Failed", Codes: []uint32{4625}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}

	s := FromCatalog(c)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for _, code := range []uint32{4720, 4722, 4625} {
		if !s.IsEnabled(code) {
			t.Errorf("code %d not enabled", code)
		}
	}
	if s.IsEnabled(1102) {
		t.Error("code 1102 enabled but not in catalog")
	}
}

func TestEnableDisable(t *testing.T) {
	s := NewSet(4625, 4720)

	s.Disable(4625)
	if s.IsEnabled(4625) {
		t.Error("4625 still enabled after Disable")
	}
	s.Disable(4625) // no-op
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Enable(4625)
	s.Enable(4625)
	if !s.IsEnabled(4625) {
		t.Error("4625 not enabled after Enable")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	got := s.Codes()
	if len(got) != 2 || got[0] != 4625 || got[1] != 4720 {
		t.Errorf("Codes() = %v, want [4625 4720]", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSet(1, 2)
	snap := s.Clone()
	s.Disable(1)

	if !snap.IsEnabled(1) {
		t.Error("clone affected by Disable on original")
	}
	snap.Enable(3)
	if s.IsEnabled(3) {
		t.Error("original affected by Enable on clone")
	}
}
