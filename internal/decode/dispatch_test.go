package decode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

func TestReadStructurePropertyBlock(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x06, 0, -1).
		preamble().
		str("R1").
		pad(3).
		u16(1). // normal view only
		str("VALUE").
		pad(29)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	rec, err := d.ReadStructure()
	if err != nil {
		t.Fatalf("read structure: %v", err)
	}
	pb, ok := rec.(*PropertyBlock)
	if !ok {
		t.Fatalf("decoded %T, want *PropertyBlock", rec)
	}
	if pb.Ref != "R1" || pb.Name != "VALUE" || pb.HasConvert {
		t.Fatalf("property block = %+v", pb)
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
}

func TestReadStructurePropertyBlockConvertView(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x06, 0, -1).
		preamble().
		str("U3").
		pad(3).
		u16(2).
		str("GATE.Convert").
		str("GATE").
		pad(29)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	rec, err := d.ReadStructure()
	if err != nil {
		t.Fatalf("read structure: %v", err)
	}
	pb := rec.(*PropertyBlock)
	if !pb.HasConvert || pb.ConvertName != "GATE.Convert" || pb.Name != "GATE" {
		t.Fatalf("property block = %+v", pb)
	}
}

func TestReadStructurePropertyBlockBadViewNumber(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x06, 0, -1).
		preamble().
		str("R1").
		pad(3).
		u16(7)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadStructure()
	if !errors.Is(err, fault.ErrFormatAssumptionViolation) {
		t.Fatalf("expected ErrFormatAssumptionViolation, got %v", err)
	}
}

func TestReadStructureWireConsumesDeclaredSpan(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x14, 0x3d, -1).
		preamble().
		u32(77). // dbId
		pad(4).
		u32(0x30). // color
		i32(10).i32(20).i32(110).i32(20).
		pad(1).
		pad(2). // hint == 0x3d branch
		pad(2).
		u32(1). // line width
		u32(0). // line style
		pad(12) // undecoded tail up to the declared stop
	d := newTestDecoder(sb.b, format.VersionC, nil)

	rec, err := d.ReadStructure()
	if err != nil {
		t.Fatalf("read structure: %v", err)
	}
	w, ok := rec.(*Wire)
	if !ok {
		t.Fatalf("decoded %T, want *Wire", rec)
	}
	if w.DBID != 77 || w.StartX != 10 || w.EndX != 110 {
		t.Fatalf("wire = %+v", w)
	}
	if !d.Cursor().EOF() {
		t.Fatalf("declared span not consumed: %d left", d.Cursor().Remaining())
	}
	if d.Future().Depth() != 0 {
		t.Fatalf("boundary not popped")
	}
}

func TestReadStructureWireExactSpan(t *testing.T) {
	// Hint 0x2f covers precisely the decoded fields, so the reader
	// lands on the declared stop with nothing left to skip.
	var sb streamBuilder
	sb.fullPrefix(0x14, 0x2f, -1).
		preamble().
		u32(5). // dbId
		pad(4).
		u32(0x30). // color
		i32(0).i32(0).i32(50).i32(0).
		pad(1).
		pad(2).
		u32(1). // line width
		u32(0)  // line style
	d := newTestDecoder(sb.b, format.VersionC, nil)

	if _, err := d.ReadStructure(); err != nil {
		t.Fatalf("read structure: %v", err)
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
	if d.Future().Depth() != 0 {
		t.Fatalf("boundary not popped")
	}
}

func TestReadStructureSameBytesSameTree(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x06, 0, -1).
		preamble().
		str("U3").
		pad(3).
		u16(2).
		str("GATE.Convert").
		str("GATE").
		pad(29)

	first, err := newTestDecoder(sb.b, format.VersionC, nil).ReadStructure()
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, err := newTestDecoder(sb.b, format.VersionC, nil).ReadStructure()
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same bytes decoded differently (-first +second):\n%s", diff)
	}
}

func TestReadStructurePinMappingRejectsBadSeparator(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x20, 0, -1).
		preamble().
		str("A").
		str("U1").
		u16(1).
		str("P1").
		raw(0x55)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadStructure()
	if !errors.Is(err, fault.ErrFormatAssumptionViolation) {
		t.Fatalf("expected ErrFormatAssumptionViolation, got %v", err)
	}
}

func TestReadStructureSymbolDisplayProp(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x25, 0, -1).
		preamble().
		u32(1).           // name index
		i16(30).i16(-40). // location
		u16(0x8003).      // rotation 180, font 3
		raw(0x30).        // color
		pad(2).
		pad(1)
	d := newTestDecoder(sb.b, format.VersionC, StringTable{"VCC"})

	rec, err := d.ReadStructure()
	if err != nil {
		t.Fatalf("read structure: %v", err)
	}
	p := rec.(*SymbolDisplayProp)
	if p.Name != "VCC" || p.X != 30 || p.Y != -40 {
		t.Fatalf("display prop = %+v", p)
	}
	if p.FontIdx != 3 || p.Rotation != format.RotationDeg180 {
		t.Fatalf("font/rotation = %d/%s", p.FontIdx, p.Rotation)
	}
}

func TestReadStructureSymbolDisplayPropReservedBits(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x25, 0, -1).
		preamble().
		u32(0).
		i16(0).i16(0).
		u16(0x0100) // reserved bit set
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadStructure()
	if !errors.Is(err, fault.ErrFormatAssumptionViolation) {
		t.Fatalf("expected ErrFormatAssumptionViolation, got %v", err)
	}
}

func TestReadStructureUnknownTag(t *testing.T) {
	var sb streamBuilder
	sb.fullPrefix(0x99, 0, -1)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	_, err := d.ReadStructure()
	if !errors.Is(err, fault.ErrUnimplementedStructure) {
		t.Fatalf("expected ErrUnimplementedStructure, got %v", err)
	}
}

func TestEveryKnownStructureIsRoutable(t *testing.T) {
	for _, s := range format.Structures() {
		if _, ok := structureReaders[s]; !ok {
			t.Errorf("no reader for %s", s)
		}
		if _, ok := preambleBefore[s]; !ok {
			t.Errorf("no preamble rule for %s", s)
		}
	}
}
