// Package library orchestrates a whole-file decode: extract the
// container, classify its streams, parse the library stream first for
// the shared string table, predict the format version, then decode
// every remaining stream. A failed stream is recorded and skipped; one
// bad page must not take down the run.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/config"
	"github.com/danmuck/orcadec/internal/container"
	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/decode"
	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
	"github.com/danmuck/orcadec/internal/streams"
)

// StreamError is one stream that failed to decode, with the location
// the failure was detected at.
type StreamError struct {
	Stream string
	Offset int64
	Err    error
}

func (e StreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stream, e.Err)
}

// Library is the decoded result of one container file.
type Library struct {
	Source   string
	FileType format.FileType
	Version  format.Version

	Directories map[string]*streams.Directory
	Types       map[string][]streams.Type
	Symbols     *streams.SymbolsLibrary
	Packages    []*streams.Package
	Pages       []*streams.Page
	Hierarchies []*streams.Hierarchy

	// Streams seen but not parsed, either because their layout is not
	// understood or because parsing failed.
	Skipped []string
	Errors  []StreamError

	// Parsed counts parse attempts, Failed those that errored.
	Parsed int
	Failed int
}

// Parser decodes container files according to one run configuration.
type Parser struct {
	cfg config.RunConfig
	log zerolog.Logger
}

func NewParser(cfg config.RunConfig, log zerolog.Logger) *Parser {
	return &Parser{cfg: cfg, log: log}
}

// Parse decodes the container file at path.
func (p *Parser) Parse(path string) (*Library, error) {
	ex, err := container.Extract(path, p.log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if p.cfg.KeepWorkspace {
			p.log.Info().Str("workdir", ex.WorkDir).Msg("keeping extraction workspace")
			return
		}
		if err := ex.Close(); err != nil {
			p.log.Warn().Err(err).Msg("could not remove extraction workspace")
		}
	}()
	return p.ParseExtracted(ex)
}

// ParseExtracted decodes an already extracted container. The caller
// keeps ownership of the workspace.
func (p *Parser) ParseExtracted(ex *container.Extracted) (*Library, error) {
	lib := &Library{
		Source:      ex.Source,
		FileType:    FileTypeOf(ex.Source),
		Directories: make(map[string]*streams.Directory),
		Types:       make(map[string][]streams.Type),
	}

	// The library stream carries the string table; everything that
	// resolves prefix pairs depends on it being parsed first. If it
	// fails, the failure is recorded like any other stream and the run
	// proceeds without a string table.
	var table decode.StringTable
	for _, s := range ex.Streams {
		if len(s.Path) == 1 && s.Name() == "Library" {
			data, err := os.ReadFile(s.DiskPath)
			if err != nil {
				return nil, err
			}
			sym, err := streams.ParseSymbolsLibrary(p.newDecoder(data, format.VersionUnknown, nil))
			if err != nil {
				if err := p.record(lib, s, err); err != nil {
					return nil, err
				}
				break
			}
			lib.Parsed++
			lib.Symbols = sym
			table = sym.Strings
			break
		}
	}

	ver, err := p.pickVersion(ex, table)
	if err != nil {
		return nil, err
	}
	lib.Version = ver
	p.log.Info().
		Stringer("version", lib.Version).
		Str("container", ex.Source).
		Msg("decoding container")

	for _, s := range ex.Streams {
		if err := p.parseStream(lib, s, table); err != nil {
			return nil, err
		}
	}

	if lib.Failed > 0 {
		p.log.Warn().
			Int("failed", lib.Failed).
			Int("parsed", lib.Parsed).
			Msg("some streams failed to decode")
	} else {
		p.log.Info().Int("parsed", lib.Parsed).Msg("container decoded")
	}
	for _, name := range lib.Skipped {
		p.log.Warn().Str("stream", name).Msg("stream not parsed")
	}
	return lib, nil
}

func (p *Parser) newDecoder(data []byte, ver format.Version, tbl decode.StringTable) *decode.Decoder {
	return decode.New(cursor.New(data, p.log), ver, tbl, p.log)
}

// pickVersion honors a configured version, otherwise trial-decodes the
// first package stream against every candidate.
func (p *Parser) pickVersion(ex *container.Extracted, table decode.StringTable) (format.Version, error) {
	if ver, err := p.cfg.FormatVersion(); err != nil {
		return format.VersionUnknown, err
	} else if ver.Known() {
		return ver, nil
	}

	for _, s := range ex.Streams {
		if len(s.Path) != 2 || s.Path[0] != "Packages" {
			continue
		}
		data, err := os.ReadFile(s.DiskPath)
		if err != nil {
			return format.VersionUnknown, err
		}
		ver := decode.PredictVersion(data, table, p.log, func(d *decode.Decoder) error {
			p.log.Trace().
				Stringer("candidate", d.Version()).
				Str("stream", s.ContainerPath()).
				Msg("trial decode")
			_, err := streams.ParsePackage(d)
			return err
		})
		if ver.Known() {
			return ver, nil
		}
	}

	// No package stream to predict from; newest known version is the
	// best remaining guess.
	return format.VersionC, nil
}

func (p *Parser) parseStream(lib *Library, s container.Stream, table decode.StringTable) error {
	kind, key := classify(s)
	if kind == streamUnhandled {
		lib.Skipped = append(lib.Skipped, s.ContainerPath())
		return nil
	}
	if kind == streamLibrary {
		// Parsed up front for the string table.
		return nil
	}

	data, err := os.ReadFile(s.DiskPath)
	if err != nil {
		return err
	}
	d := p.newDecoder(data, lib.Version, table)

	switch kind {
	case streamDirectory:
		dir, err := streams.ParseDirectory(d)
		if err != nil {
			return p.record(lib, s, err)
		}
		lib.Directories[key] = dir
	case streamTypes:
		types, err := streams.ParseTypes(d)
		if err != nil {
			return p.record(lib, s, err)
		}
		lib.Types[key] = types
	case streamPackage:
		pkg, err := streams.ParsePackage(d)
		if err != nil {
			return p.record(lib, s, err)
		}
		lib.Packages = append(lib.Packages, pkg)
	case streamPage:
		page, err := streams.ParsePage(d)
		if err != nil {
			return p.record(lib, s, err)
		}
		lib.Pages = append(lib.Pages, page)
	case streamHierarchy:
		h, err := streams.ParseHierarchy(d)
		if err != nil {
			return p.record(lib, s, err)
		}
		lib.Hierarchies = append(lib.Hierarchies, h)
	}

	lib.Parsed++
	return nil
}

// record notes a failed stream. Decoding continues unless the run is
// configured to stop on the first error.
func (p *Parser) record(lib *Library, s container.Stream, err error) error {
	lib.Parsed++
	lib.Failed++
	se := StreamError{
		Stream: s.ContainerPath(),
		Offset: fault.OffsetOf(err),
		Err:    err,
	}
	lib.Errors = append(lib.Errors, se)
	p.log.Error().
		Str("stream", se.Stream).
		Int64("offset", se.Offset).
		Err(err).
		Msg("stream failed to decode")
	if p.cfg.StopOnFirstError {
		return se
	}
	return nil
}

// FileTypeOf derives the file type from the container extension.
func FileTypeOf(path string) format.FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".olb", ".obk":
		return format.FileTypeLibrary
	case ".dsn", ".dbk":
		return format.FileTypeSchematic
	default:
		return format.FileTypeUnknown
	}
}

type streamKind int

const (
	streamUnhandled streamKind = iota
	streamLibrary
	streamDirectory
	streamTypes
	streamPackage
	streamPage
	streamHierarchy
)

// classify maps a container stream path onto the decoder responsible
// for it. The key return is the map key for keyed kinds (directory
// section, types owner).
func classify(s container.Stream) (streamKind, string) {
	name := s.Name()
	switch len(s.Path) {
	case 1:
		if name == "Library" {
			return streamLibrary, ""
		}
		if section, ok := strings.CutSuffix(name, " Directory"); ok {
			return streamDirectory, section
		}
	case 2:
		if name == "$Types$" {
			return streamTypes, s.Path[0]
		}
		if s.Path[0] == "Packages" {
			return streamPackage, ""
		}
		if s.Path[0] == "Symbols" && name != "ERC" {
			// Symbol streams share the package stream layout.
			return streamPackage, ""
		}
	case 4:
		if s.Path[0] == "Views" && s.Path[2] == "Pages" {
			return streamPage, ""
		}
		if s.Path[0] == "Views" && s.Path[2] == "Hierarchy" {
			return streamHierarchy, ""
		}
	}
	return streamUnhandled, ""
}
