package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/config"
	"github.com/danmuck/orcadec/internal/container"
	"github.com/danmuck/orcadec/internal/format"
)

func TestFileTypeOf(t *testing.T) {
	cases := map[string]format.FileType{
		"demo.olb":     format.FileTypeLibrary,
		"backup.OBK":   format.FileTypeLibrary,
		"board.dsn":    format.FileTypeSchematic,
		"board.DBK":    format.FileTypeSchematic,
		"whatever.bin": format.FileTypeUnknown,
		"no-extension": format.FileTypeUnknown,
	}
	for path, want := range cases {
		if got := FileTypeOf(path); got != want {
			t.Errorf("FileTypeOf(%q) = %s, want %s", path, got, want)
		}
	}
}

// malformedLibraryWorkspace lays out an extracted container whose
// Library stream is an unterminated string, which no version decodes.
func malformedLibraryWorkspace(t *testing.T) *container.Extracted {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Library")
	if err := os.WriteFile(path, []byte{0x41, 0x42}, 0o644); err != nil {
		t.Fatalf("write stream: %v", err)
	}
	return &container.Extracted{
		Source:  "demo.olb",
		WorkDir: dir,
		Streams: []container.Stream{
			{Path: []string{"Library"}, DiskPath: path, Size: 2},
		},
	}
}

func TestParseExtractedRecordsLibraryStreamFailure(t *testing.T) {
	ex := malformedLibraryWorkspace(t)
	p := NewParser(config.Default(), zerolog.Nop())

	lib, err := p.ParseExtracted(ex)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lib == nil {
		t.Fatal("parse returned a nil library with a nil error")
	}
	if lib.Failed != 1 || len(lib.Errors) != 1 {
		t.Fatalf("failed=%d errors=%v", lib.Failed, lib.Errors)
	}
	if lib.Errors[0].Stream != "Library" {
		t.Fatalf("recorded stream = %q", lib.Errors[0].Stream)
	}
	if lib.Symbols != nil {
		t.Fatalf("symbols = %+v, want none", lib.Symbols)
	}
	// No package stream to predict from either.
	if lib.Version != format.VersionC {
		t.Fatalf("version = %s", lib.Version)
	}
}

func TestParseExtractedStopsOnFirstErrorWhenConfigured(t *testing.T) {
	ex := malformedLibraryWorkspace(t)
	cfg := config.Default()
	cfg.StopOnFirstError = true

	_, err := NewParser(cfg, zerolog.Nop()).ParseExtracted(ex)
	se, ok := err.(StreamError)
	if !ok {
		t.Fatalf("err = %v (%T), want a StreamError", err, err)
	}
	if se.Stream != "Library" {
		t.Fatalf("failed stream = %q", se.Stream)
	}
}

func TestClassifyStreams(t *testing.T) {
	cases := []struct {
		path []string
		kind streamKind
		key  string
	}{
		{[]string{"Library"}, streamLibrary, ""},
		{[]string{"Packages Directory"}, streamDirectory, "Packages"},
		{[]string{"Views Directory"}, streamDirectory, "Views"},
		{[]string{"Graphics", "$Types$"}, streamTypes, "Graphics"},
		{[]string{"Packages", "RES"}, streamPackage, ""},
		{[]string{"Symbols", "VCC"}, streamPackage, ""},
		{[]string{"Symbols", "ERC"}, streamUnhandled, ""},
		{[]string{"Views", "S1", "Pages", "Page1"}, streamPage, ""},
		{[]string{"Views", "S1", "Hierarchy", "Hierarchy"}, streamHierarchy, ""},
		{[]string{"Cache"}, streamUnhandled, ""},
		{[]string{"AdminData"}, streamUnhandled, ""},
	}
	for _, tc := range cases {
		kind, key := classify(container.Stream{Path: tc.path})
		if kind != tc.kind || key != tc.key {
			t.Errorf("classify(%v) = (%v, %q), want (%v, %q)", tc.path, kind, key, tc.kind, tc.key)
		}
	}
}
