package decode

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/fault"
)

// FutureData is a declared upper bound on an undecoded span: the
// enclosing structure must end exactly at StopOffset. Structures whose
// tail layout is not yet understood still declare this bound, so drift
// becomes an immediate, located failure instead of silently corrupting
// sibling data.
type FutureData struct {
	StartOffset int64
	StopOffset  int64
}

// FutureDataList is the ordered stack of pending boundaries mirroring
// recursion depth, plus the checkpoints recorded against them.
type FutureDataList struct {
	cur     *cursor.Cursor
	log     zerolog.Logger
	pending []FutureData // outermost first
	marks   []int64      // checkpoint offsets, in recording order
}

func NewFutureDataList(cur *cursor.Cursor, log zerolog.Logger) *FutureDataList {
	return &FutureDataList{cur: cur, log: log}
}

// Depth is the number of pending boundaries.
func (l *FutureDataList) Depth() int {
	return len(l.pending)
}

// Declare pushes a new innermost boundary. An inner stop offset beyond
// its enclosing one breaks the nesting invariant and is reported as a
// checkpoint mismatch right away.
func (l *FutureDataList) Declare(op string, start, stop int64) error {
	if n := len(l.pending); n > 0 && stop > l.pending[n-1].StopOffset {
		return fault.New(fault.ErrCheckpointMismatch, op, l.cur.Offset(),
			"inner boundary stop 0x%08x exceeds enclosing stop 0x%08x",
			stop, l.pending[n-1].StopOffset)
	}
	l.pending = append(l.pending, FutureData{StartOffset: start, StopOffset: stop})
	l.log.Trace().
		Int64("start", start).
		Int64("stop", stop).
		Int("depth", len(l.pending)).
		Msg("boundary declared")
	return nil
}

// Checkpoint records the cursor's current offset as a pending boundary
// mark, validated later by Sanitize.
func (l *FutureDataList) Checkpoint() {
	l.marks = append(l.marks, l.cur.Offset())
}

// NextBoundary inspects the nearest pending boundary without popping.
func (l *FutureDataList) NextBoundary() (FutureData, bool) {
	if len(l.pending) == 0 {
		return FutureData{}, false
	}
	return l.pending[len(l.pending)-1], true
}

// ReadUntilNextBoundary discards bytes up to exactly the nearest
// pending boundary. A cursor already past it is a boundary overrun.
func (l *FutureDataList) ReadUntilNextBoundary(op, reason string) error {
	fd, ok := l.NextBoundary()
	if !ok {
		return fault.New(fault.ErrCheckpointMismatch, op, l.cur.Offset(),
			"no pending boundary (%s)", reason)
	}
	gap := fd.StopOffset - l.cur.Offset()
	if gap < 0 {
		return fault.New(fault.ErrBoundaryOverrun, op, l.cur.Offset(),
			"consumed 0x%08x, boundary stops at 0x%08x (%s)",
			l.cur.Offset(), fd.StopOffset, reason)
	}
	if gap == 0 {
		return nil
	}
	l.log.Trace().
		Int64("bytes", gap).
		Str("reason", reason).
		Msg("skipping to boundary")
	return l.cur.Discard(op, int(gap))
}

// ConsumeRestOfSpan discards to the innermost boundary and pops it.
func (l *FutureDataList) ConsumeRestOfSpan(op string) error {
	if err := l.ReadUntilNextBoundary(op, "rest of structure"); err != nil {
		return err
	}
	l.pop()
	return nil
}

// Drop pops the innermost boundary without consuming, for callers that
// interpreted the whole span themselves.
func (l *FutureDataList) Drop() {
	l.pop()
}

func (l *FutureDataList) pop() {
	if n := len(l.pending); n > 0 {
		l.pending = l.pending[:n-1]
	}
}

// Sanitize asserts that offsets reached so far respect the
// non-decreasing nesting invariant: checkpoints must never run
// backwards, and none may lie beyond the innermost pending boundary.
func (l *FutureDataList) Sanitize(structName string) error {
	const op = "sanitizeCheckpoints"

	for i := 1; i < len(l.marks); i++ {
		if l.marks[i] < l.marks[i-1] {
			return fault.New(fault.ErrCheckpointMismatch, op, l.marks[i],
				"%s: checkpoint 0x%08x precedes earlier checkpoint 0x%08x",
				structName, l.marks[i], l.marks[i-1])
		}
	}
	if fd, ok := l.NextBoundary(); ok {
		for _, m := range l.marks {
			if m > fd.StopOffset {
				return fault.New(fault.ErrCheckpointMismatch, op, m,
					"%s: checkpoint 0x%08x beyond declared stop 0x%08x",
					structName, m, fd.StopOffset)
			}
		}
	}
	l.marks = l.marks[:0]
	return nil
}
