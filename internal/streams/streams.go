// Package streams holds the typed decoders for the individual streams
// extracted from the container: directory listings, type registries,
// the symbols library with its shared string table, packages, schematic
// pages and hierarchies. Every decoder must consume its stream exactly;
// trailing bytes mean the layout drifted and are reported, not ignored.
package streams

import (
	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/fault"
)

func requireEOF(op string, cur *cursor.Cursor) error {
	if !cur.EOF() {
		return fault.New(fault.ErrFormatAssumptionViolation, op, cur.Offset(),
			"expected end of stream, %d byte left", cur.Remaining())
	}
	return nil
}
