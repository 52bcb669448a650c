// Package fault is the decode error taxonomy. Every failure carries the
// detecting operation and the absolute byte offset it was raised at, so
// a misparse is localized instead of corrupting sibling data silently.
package fault

import (
	"errors"
	"fmt"
)

// Kind sentinels. Wrapped by Error so callers can errors.Is against the
// class and errors.As for the location details.
var (
	ErrUnexpectedMagic           = errors.New("unexpected magic")
	ErrFormatAssumptionViolation = errors.New("format assumption violated")
	ErrTagMismatch               = errors.New("redundant tag encodings disagree")
	ErrUnimplementedStructure    = errors.New("structure not implemented")
	ErrUnimplementedGeometry     = errors.New("geometry structure not implemented")
	ErrStringTableOverrun        = errors.New("string table index out of range")
	ErrBoundaryOverrun           = errors.New("consumed bytes past declared boundary")
	ErrCheckpointMismatch        = errors.New("checkpoint diverges from declared boundary")
	ErrPrematureEndOfStream      = errors.New("premature end of stream")
)

// Error is a decode failure pinned to a stream offset.
type Error struct {
	Kind   error  // one of the sentinels above
	Op     string // detecting function or structure name
	Offset int64  // absolute byte offset at detection time
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v at offset 0x%08x", e.Op, e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s: %v at offset 0x%08x: %s", e.Op, e.Kind, e.Offset, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New builds a located decode error.
func New(kind error, op string, offset int64, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Op:     op,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// OffsetOf extracts the detecting offset from err, or -1 when err does
// not carry one.
func OffsetOf(err error) int64 {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Offset
	}
	return -1
}
