// Package decode is the byte-level decoding engine: the preamble and
// type-prefix codec, the FutureData boundary tracker, the recursive
// structure dispatcher, the geometry decoder and the resynchronization
// fallback. A decode is a pure function of (bytes, version, string
// table) plus diagnostic output; no state leaks across streams.
package decode

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

// maxDepth bounds recursive descent over untrusted input. Observed real
// files nest a handful of levels; anything near this limit is a
// misparse, not a design.
const maxDepth = 64

// Decoder walks one stream depth-first. It owns its cursor and boundary
// tracker; the string table is shared, read-only, and threaded in
// explicitly.
type Decoder struct {
	cur *cursor.Cursor
	ver format.Version
	tbl StringTable
	log zerolog.Logger

	future *FutureDataList

	// offsetHint is the 4-byte hint of the most recent full type-prefix,
	// cached for size-dependent branching (e.g. the wire reader).
	offsetHint uint32

	depth int
}

func New(cur *cursor.Cursor, ver format.Version, tbl StringTable, log zerolog.Logger) *Decoder {
	return &Decoder{
		cur:    cur,
		ver:    ver,
		tbl:    tbl,
		log:    log,
		future: NewFutureDataList(cur, log),
	}
}

// Cursor exposes the underlying stream position, mainly for callers
// asserting exact end-of-stream.
func (d *Decoder) Cursor() *cursor.Cursor {
	return d.cur
}

// Version is the file format version fixed for this decode session.
func (d *Decoder) Version() format.Version {
	return d.ver
}

// Future is the boundary tracker mirroring the current recursion.
func (d *Decoder) Future() *FutureDataList {
	return d.future
}

// OffsetHint is the cached hint of the most recent full type-prefix.
func (d *Decoder) OffsetHint() uint32 {
	return d.offsetHint
}

func (d *Decoder) enter(op string) error {
	if d.depth >= maxDepth {
		return fault.New(fault.ErrFormatAssumptionViolation, op, d.cur.Offset(),
			"recursion depth %d exceeded", maxDepth)
	}
	d.depth++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}
