package decode

import (
	"encoding/binary"

	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/format"
)

// streamBuilder assembles little-endian test fixtures.
type streamBuilder struct {
	b []byte
}

func (s *streamBuilder) raw(v ...byte) *streamBuilder {
	s.b = append(s.b, v...)
	return s
}

func (s *streamBuilder) u16(v uint16) *streamBuilder {
	s.b = binary.LittleEndian.AppendUint16(s.b, v)
	return s
}

func (s *streamBuilder) u32(v uint32) *streamBuilder {
	s.b = binary.LittleEndian.AppendUint32(s.b, v)
	return s
}

func (s *streamBuilder) i16(v int16) *streamBuilder { return s.u16(uint16(v)) }
func (s *streamBuilder) i32(v int32) *streamBuilder { return s.u32(uint32(v)) }

func (s *streamBuilder) str(v string) *streamBuilder {
	s.b = append(s.b, v...)
	s.b = append(s.b, 0x00)
	return s
}

func (s *streamBuilder) pad(n int) *streamBuilder {
	s.b = append(s.b, make([]byte, n)...)
	return s
}

func (s *streamBuilder) preamble() *streamBuilder {
	return s.raw(PreambleMagic...).u32(0)
}

// shortPrefix writes the short type-prefix shape with no pair list
// when count is negative, otherwise count pairs of (name, value)
// string table indices.
func (s *streamBuilder) shortPrefix(tag byte, count int16, pairs ...[2]uint32) *streamBuilder {
	s.raw(tag).u32(lockFlagUnlocked).pad(4).raw(tag).i16(count)
	for _, p := range pairs {
		s.u32(p[0]).u32(p[1])
	}
	return s
}

func (s *streamBuilder) fullPrefix(tag byte, hint uint32, count int16, pairs ...[2]uint32) *streamBuilder {
	return s.raw(tag).u32(hint).pad(4).shortPrefix(tag, count, pairs...)
}

func (s *streamBuilder) longPrefix(tag byte, count int16) *streamBuilder {
	return s.raw(tag).pad(2).pad(6).shortPrefix(tag, count)
}

func newTestDecoder(data []byte, ver format.Version, tbl StringTable) *Decoder {
	log := zerolog.Nop()
	return New(cursor.New(data, log), ver, tbl, log)
}
