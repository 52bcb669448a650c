package container

import (
	"strings"
	"testing"
)

func TestSanitizeStreamNames(t *testing.T) {
	got := sanitize("\x05DocumentSummary/Info:x")
	if strings.ContainsAny(got, "/:\\") || strings.Contains(got, "\x05") {
		t.Fatalf("sanitize left hostile characters: %q", got)
	}
	if sanitize("Library") != "Library" {
		t.Fatalf("plain names must pass through unchanged")
	}
}

func TestTreeRendering(t *testing.T) {
	ex := &Extracted{
		Source: "demo.olb",
		Streams: []Stream{
			{Path: []string{"Library"}, Size: 128},
			{Path: []string{"Packages", "RES"}, Size: 64},
		},
	}
	tree := ex.Tree()
	if !strings.Contains(tree, "demo.olb") ||
		!strings.Contains(tree, "Library (128 byte)") ||
		!strings.Contains(tree, "    RES (64 byte)") {
		t.Fatalf("unexpected tree rendering:\n%s", tree)
	}
}
