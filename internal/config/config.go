// Package config loads the decoder run configuration from TOML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/orcadec/internal/format"
)

// RunConfig controls one decode run.
type RunConfig struct {
	// LogLevel overrides the default logger level when non-empty.
	LogLevel string `toml:"log_level"`
	// Version pins the file format version ("A", "B" or "C") instead of
	// predicting it from the streams.
	Version string `toml:"version"`
	// KeepWorkspace leaves the extraction workspace on disk after the
	// run, for inspecting streams of a misparsed file.
	KeepWorkspace bool `toml:"keep_workspace"`
	// StopOnFirstError aborts the whole run at the first stream that
	// fails to decode instead of continuing with the rest.
	StopOnFirstError bool `toml:"stop_on_first_error"`
}

func Default() RunConfig {
	return RunConfig{}
}

// Load reads a RunConfig from path. An empty path yields the defaults.
func Load(path string) (RunConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func Validate(cfg RunConfig) error {
	if _, err := cfg.FormatVersion(); err != nil {
		return err
	}
	return nil
}

// FormatVersion maps the configured version string onto a concrete
// format version; empty means predict.
func (c RunConfig) FormatVersion() (format.Version, error) {
	switch strings.ToUpper(strings.TrimSpace(c.Version)) {
	case "":
		return format.VersionUnknown, nil
	case "A":
		return format.VersionA, nil
	case "B":
		return format.VersionB, nil
	case "C":
		return format.VersionC, nil
	default:
		return format.VersionUnknown, fmt.Errorf("unknown file format version %q", c.Version)
	}
}
