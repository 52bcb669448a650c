package decode

import (
	"errors"
	"testing"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

func TestReadPreambleBadMagicPutsBytesBack(t *testing.T) {
	d := newTestDecoder([]byte{0xde, 0xad, 0xbe, 0xef}, format.VersionC, nil)
	_, err := d.ReadPreamble(false)
	if !errors.Is(err, fault.ErrUnexpectedMagic) {
		t.Fatalf("expected ErrUnexpectedMagic, got %v", err)
	}
	if got := d.Cursor().Offset(); got != 0 {
		t.Fatalf("cursor moved to %d on failed preamble", got)
	}
	if off := fault.OffsetOf(err); off != 0 {
		t.Fatalf("error offset = %d, want 0", off)
	}
}

func TestReadPreambleWithLockPayload(t *testing.T) {
	var sb streamBuilder
	sb.raw(PreambleMagic...).u32(3).raw(0xaa, 0xbb, 0xcc).u16(0x1234)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	n, err := d.ReadPreamble(true)
	if err != nil {
		t.Fatalf("read preamble: %v", err)
	}
	if n != 3 {
		t.Fatalf("lock payload len = %d, want 3", n)
	}
	v, err := d.Cursor().ReadU16("test")
	if err != nil || v != 0x1234 {
		t.Fatalf("stream desynchronized after lock payload: v=0x%04x err=%v", v, err)
	}
}

func TestReadShortPrefixResolvesPairs(t *testing.T) {
	var sb streamBuilder
	sb.shortPrefix(0x06, 2, [2]uint32{1, 2}, [2]uint32{0, 1})
	d := newTestDecoder(sb.b, format.VersionC, StringTable{"NAME", "VAL"})

	tp, err := d.ReadShortPrefix()
	if err != nil {
		t.Fatalf("read short prefix: %v", err)
	}
	if tp.Tag != format.StructProperties {
		t.Fatalf("tag = %s", tp.Tag)
	}
	if tp.PairsAbsent || len(tp.Pairs) != 2 {
		t.Fatalf("pairs = %+v", tp.Pairs)
	}
	if tp.Pairs[0].Name != "NAME" || tp.Pairs[0].Value != "VAL" {
		t.Fatalf("pair 0 = %+v", tp.Pairs[0])
	}
	if tp.Pairs[1].HasName || tp.Pairs[1].Value != "NAME" {
		t.Fatalf("pair 1 = %+v", tp.Pairs[1])
	}
}

func TestReadShortPrefixNegativeCountMeansNoPairs(t *testing.T) {
	var sb streamBuilder
	sb.shortPrefix(0x06, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	tp, err := d.ReadShortPrefix()
	if err != nil {
		t.Fatalf("read short prefix: %v", err)
	}
	if !tp.PairsAbsent || len(tp.Pairs) != 0 {
		t.Fatalf("expected absent pair list, got %+v", tp)
	}
}

func TestReadShortPrefixPairOverrunsStringTable(t *testing.T) {
	var sb streamBuilder
	sb.shortPrefix(0x06, 1, [2]uint32{5, 0})
	d := newTestDecoder(sb.b, format.VersionC, StringTable{"ONLY"})

	_, err := d.ReadShortPrefix()
	if !errors.Is(err, fault.ErrStringTableOverrun) {
		t.Fatalf("expected ErrStringTableOverrun, got %v", err)
	}
}

func TestReadShortPrefixUnknownTag(t *testing.T) {
	var sb streamBuilder
	sb.shortPrefix(0x99, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadShortPrefix()
	if !errors.Is(err, fault.ErrUnimplementedStructure) {
		t.Fatalf("expected ErrUnimplementedStructure, got %v", err)
	}
}

func TestReadLongPrefixTagMismatch(t *testing.T) {
	var sb streamBuilder
	sb.raw(0x14).pad(2).pad(6).shortPrefix(0x06, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadLongPrefix()
	if !errors.Is(err, fault.ErrTagMismatch) {
		t.Fatalf("expected ErrTagMismatch, got %v", err)
	}
}

func TestReadFullPrefixDeclaresBoundary(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x14, 0x20, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	tp, err := d.ReadFullPrefix()
	if err != nil {
		t.Fatalf("read full prefix: %v", err)
	}
	if tp.Tag != format.StructWireScalar || tp.OffsetHint != 0x20 {
		t.Fatalf("prefix = %+v", tp)
	}
	if d.OffsetHint() != 0x20 {
		t.Fatalf("cached hint = 0x%x", d.OffsetHint())
	}
	if d.Future().Depth() != 1 {
		t.Fatalf("boundary depth = %d, want 1", d.Future().Depth())
	}
	fd, ok := d.Future().NextBoundary()
	if !ok || fd.StopOffset != d.Cursor().Offset()+0x20 {
		t.Fatalf("boundary = %+v ok=%v cursor=%d", fd, ok, d.Cursor().Offset())
	}
}

func TestReadFullPrefixZeroHintDeclaresNothing(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x06, 0, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	if _, err := d.ReadFullPrefix(); err != nil {
		t.Fatalf("read full prefix: %v", err)
	}
	if d.Future().Depth() != 0 {
		t.Fatalf("boundary depth = %d, want 0", d.Future().Depth())
	}
}

func TestReadFullPrefixMetadataMustBeZero(t *testing.T) {
	var sb streamBuilder
	sb.raw(0x06).u32(0).raw(0x01, 0x00, 0x00, 0x00).shortPrefix(0x06, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadFullPrefix()
	if !errors.Is(err, fault.ErrFormatAssumptionViolation) {
		t.Fatalf("expected ErrFormatAssumptionViolation, got %v", err)
	}
}
