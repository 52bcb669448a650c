// Package container extracts the streams of an OLE/CFB compound file
// into a per-session temp workspace, so decoders work on plain files
// and a crashed run leaves inspectable evidence behind.
package container

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/richardlehane/mscfb"
	"github.com/rs/zerolog"
)

// Stream is one extracted container stream.
type Stream struct {
	// Path is the stream's location inside the container, storages
	// first, stream name last.
	Path []string
	// DiskPath is where the stream's bytes were extracted to.
	DiskPath string
	Size     int64
}

// Name is the stream's own name, without storages.
func (s Stream) Name() string {
	if len(s.Path) == 0 {
		return ""
	}
	return s.Path[len(s.Path)-1]
}

// ContainerPath is the slash-joined path inside the container.
func (s Stream) ContainerPath() string {
	return strings.Join(s.Path, "/")
}

// Extracted is the unpacked container: every stream written under a
// uuid-named workspace, unique per session so parallel runs never
// collide.
type Extracted struct {
	Source  string
	WorkDir string
	Streams []Stream
}

// Extract unpacks every stream of the compound file at path into a
// fresh workspace. Streams come back sorted by container path.
func Extract(path string, log zerolog.Logger) (*Extracted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("read compound file %s: %w", path, err)
	}

	workDir := filepath.Join(os.TempDir(), "orcadec", uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	ex := &Extracted{Source: path, WorkDir: workDir}
	for entry, err := doc.Next(); err != io.EOF; entry, err = doc.Next() {
		if err != nil {
			return nil, fmt.Errorf("walk compound file %s: %w", path, err)
		}
		if entry.Size == 0 && entry.FileInfo().IsDir() {
			continue
		}

		streamPath := append(append([]string{}, entry.Path...), entry.Name)
		diskPath, err := writeStream(workDir, streamPath, entry)
		if err != nil {
			return nil, err
		}
		ex.Streams = append(ex.Streams, Stream{
			Path:     streamPath,
			DiskPath: diskPath,
			Size:     entry.Size,
		})
		log.Trace().
			Str("stream", strings.Join(streamPath, "/")).
			Int64("size", entry.Size).
			Msg("extracted stream")
	}

	sort.Slice(ex.Streams, func(i, j int) bool {
		return ex.Streams[i].ContainerPath() < ex.Streams[j].ContainerPath()
	})
	log.Debug().
		Str("container", path).
		Str("workdir", workDir).
		Int("streams", len(ex.Streams)).
		Msg("container extracted")
	return ex, nil
}

func writeStream(workDir string, streamPath []string, r io.Reader) (string, error) {
	parts := make([]string, len(streamPath))
	for i, p := range streamPath {
		parts[i] = sanitize(p)
	}
	diskPath := filepath.Join(append([]string{workDir}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return "", fmt.Errorf("create stream dir: %w", err)
	}

	out, err := os.Create(diskPath)
	if err != nil {
		return "", fmt.Errorf("create stream file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("extract %s: %w", strings.Join(streamPath, "/"), err)
	}
	return diskPath, nil
}

// sanitize maps stream name bytes that are hostile to filesystems
// (control characters used by compound file conventions, separators)
// onto '_'.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, name)
}

// Close removes the extraction workspace.
func (e *Extracted) Close() error {
	return os.RemoveAll(e.WorkDir)
}

// Tree renders the container layout as an indented listing.
func (e *Extracted) Tree() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Source)
	for _, s := range e.Streams {
		depth := len(s.Path) - 1
		fmt.Fprintf(&b, "%s%s (%d byte)\n", strings.Repeat("  ", depth+1), s.Name(), s.Size)
	}
	return b.String()
}
