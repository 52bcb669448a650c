package decode

import (
	"errors"
	"testing"

	"github.com/danmuck/orcadec/internal/fault"
)

func TestStringTableResolve(t *testing.T) {
	tbl := StringTable{"NAME", "VAL"}

	s, ok, err := tbl.Resolve("test", 0, 0)
	if err != nil || ok || s != "" {
		t.Fatalf("index 0: s=%q ok=%v err=%v", s, ok, err)
	}

	s, ok, err = tbl.Resolve("test", 0, 1)
	if err != nil || !ok || s != "NAME" {
		t.Fatalf("index 1: s=%q ok=%v err=%v", s, ok, err)
	}

	s, ok, err = tbl.Resolve("test", 0, 2)
	if err != nil || !ok || s != "VAL" {
		t.Fatalf("index 2: s=%q ok=%v err=%v", s, ok, err)
	}

	_, _, err = tbl.Resolve("test", 7, 3)
	if !errors.Is(err, fault.ErrStringTableOverrun) {
		t.Fatalf("expected ErrStringTableOverrun, got %v", err)
	}
	if off := fault.OffsetOf(err); off != 7 {
		t.Fatalf("error offset = %d, want 7", off)
	}
}
