package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/orcadec/internal/format"
)

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := []byte("log_level = \"debug\"\nversion = \"b\"\nkeep_workspace = true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || !cfg.KeepWorkspace {
		t.Fatalf("cfg = %+v", cfg)
	}
	ver, err := cfg.FormatVersion()
	if err != nil || ver != format.VersionB {
		t.Fatalf("version = %s err=%v", ver, err)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte("version = \"Z\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for version Z")
	}
}

func TestFormatVersionEmptyMeansPredict(t *testing.T) {
	ver, err := RunConfig{}.FormatVersion()
	if err != nil || ver != format.VersionUnknown {
		t.Fatalf("version = %s err=%v", ver, err)
	}
}
