package decode

import (
	"github.com/danmuck/orcadec/internal/fault"
)

// StringTable is the externally built, shared, 1-indexed string list
// referenced throughout a container. Index 0 means absent. It is
// read-only during decoding.
type StringTable []string

// Resolve maps a wire index to its string. ok is false for index 0.
// An index past the table is a StringTableOverrun pinned to the offset
// the index was read at.
func (t StringTable) Resolve(op string, offset int64, idx uint32) (s string, ok bool, err error) {
	if idx == 0 {
		return "", false, nil
	}
	if int(idx) > len(t) {
		return "", false, fault.New(fault.ErrStringTableOverrun, op, offset,
			"index %d, table holds %d entries", idx, len(t))
	}
	return t[idx-1], true, nil
}
