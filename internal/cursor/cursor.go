// Package cursor is a positioned, seekable reader over one extracted
// stream. All multi-byte integers in the format are little-endian.
// Reads past end-of-stream fail, never clamp.
package cursor

import (
	"bytes"
	"encoding/binary"

	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/fault"
)

// PutbackCapacity is the minimum number of bytes callers may rely on
// pushing back, enough to re-consume a preamble magic after a resync
// scan.
const PutbackCapacity = 4

type Cursor struct {
	buf []byte
	pos int
	log zerolog.Logger
}

func New(data []byte, log zerolog.Logger) *Cursor {
	return &Cursor{buf: data, log: log}
}

// Offset is the absolute position of the next read.
func (c *Cursor) Offset() int64 {
	return int64(c.pos)
}

// Len is the total stream length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining is the number of undecoded bytes left.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// EOF reports whether the stream is fully consumed.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.buf)
}

func (c *Cursor) need(op string, n int) error {
	if c.Remaining() < n {
		return fault.New(fault.ErrPrematureEndOfStream, op, c.Offset(),
			"need %d byte, %d left", n, c.Remaining())
	}
	return nil
}

func (c *Cursor) ReadU8(op string) (uint8, error) {
	if err := c.need(op, 1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadU16(op string) (uint16, error) {
	if err := c.need(op, 2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadU32(op string) (uint32, error) {
	if err := c.need(op, 4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadI8(op string) (int8, error) {
	v, err := c.ReadU8(op)
	return int8(v), err
}

func (c *Cursor) ReadI16(op string) (int16, error) {
	v, err := c.ReadU16(op)
	return int16(v), err
}

func (c *Cursor) ReadI32(op string) (int32, error) {
	v, err := c.ReadU32(op)
	return int32(v), err
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(op string, n int) ([]byte, error) {
	if err := c.need(op, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:])
	c.pos += n
	return out, nil
}

// ReadString reads a zero-terminated string, consuming the terminator.
func (c *Cursor) ReadString(op string) (string, error) {
	idx := bytes.IndexByte(c.buf[c.pos:], 0x00)
	if idx < 0 {
		return "", fault.New(fault.ErrPrematureEndOfStream, op, c.Offset(),
			"unterminated string")
	}
	s := string(c.buf[c.pos : c.pos+idx])
	c.pos += idx + 1
	return s, nil
}

// Putback rewinds n already-consumed bytes. Supported for at least
// PutbackCapacity bytes.
func (c *Cursor) Putback(n int) {
	if n > c.pos {
		n = c.pos
	}
	c.pos -= n
}

// Assume consumes len(want) bytes and fails when they differ from the
// expected pattern.
func (c *Cursor) Assume(op string, want []byte) error {
	start := c.Offset()
	got, err := c.ReadBytes(op, len(want))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		c.Putback(len(want))
		return fault.New(fault.ErrFormatAssumptionViolation, op, start,
			"expected % 02x, got % 02x", want, got)
	}
	return nil
}

// Discard consumes n not-yet-understood bytes, tracing them so schema
// work can pick the span up later.
func (c *Cursor) Discard(op string, n int) error {
	start := c.Offset()
	raw, err := c.ReadBytes(op, n)
	if err != nil {
		return err
	}
	c.log.Trace().
		Str("op", op).
		Int64("offset", start).
		Hex("data", raw).
		Msg("unknown data")
	return nil
}
