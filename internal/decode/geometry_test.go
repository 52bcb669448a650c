package decode

import (
	"errors"
	"testing"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

func rectBodyStyled(sb *streamBuilder, x1, y1, x2, y2 int32) *streamBuilder {
	return sb.i32(x1).i32(y1).i32(x2).i32(y2).
		u32(uint32(format.LineStyleSolid)).
		u32(uint32(format.LineWidthThin)).
		u32(uint32(format.FillStyleNone)).
		u32(0)
}

func TestReadGeometrySpecTwoRects(t *testing.T) {
	var sb streamBuilder
	sb.str("SYM").pad(3).raw(0x30).pad(3).u16(2)
	rectBodyStyled(sb.raw(0x28, 0x28), 0, 0, 100, 50)
	rectBodyStyled(sb.preamble().raw(0x28, 0x28), 10, 10, 90, 40)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	spec, err := d.ReadGeometrySpec()
	if err != nil {
		t.Fatalf("read geometry spec: %v", err)
	}
	if spec.Name != "SYM" {
		t.Fatalf("name = %q", spec.Name)
	}
	if len(spec.Rects) != 2 || spec.Count() != 2 {
		t.Fatalf("rects=%d total=%d, want 2/2", len(spec.Rects), spec.Count())
	}
	if spec.Rects[1].X1 != 10 || spec.Rects[1].Y2 != 40 {
		t.Fatalf("rect 1 = %+v", spec.Rects[1])
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
}

func TestReadGeometrySpecVersionATrailingBytes(t *testing.T) {
	var sb streamBuilder
	sb.str("OLD").pad(3).raw(0x30).pad(3).u16(2)
	sb.raw(0x28, 0x28).i32(1).i32(2).i32(3).i32(4).pad(8)
	sb.raw(0x28, 0x28).i32(5).i32(6).i32(7).i32(8).pad(8)
	d := newTestDecoder(sb.b, format.VersionA, nil)

	spec, err := d.ReadGeometrySpec()
	if err != nil {
		t.Fatalf("read geometry spec: %v", err)
	}
	if len(spec.Rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(spec.Rects))
	}
	// Version A rects carry no style attributes.
	if spec.Rects[0].LineStyle != 0 || spec.Rects[0].LineWidth != 0 {
		t.Fatalf("rect 0 styles = %+v", spec.Rects[0])
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
}

func TestReadGeometrySpecVersionBRedundantPrefix(t *testing.T) {
	var sb streamBuilder
	sb.str("MID").pad(3).raw(0x30).pad(3).u16(2)
	sb.raw(0x29, 0x29).i32(0).i32(0).i32(10).i32(0).u32(0).u32(0)
	sb.fullPrefix(0x24, 0, -1).preamble()
	sb.raw(0x29, 0x29).i32(0).i32(5).i32(10).i32(5).u32(0).u32(0)
	d := newTestDecoder(sb.b, format.VersionB, nil)

	spec, err := d.ReadGeometrySpec()
	if err != nil {
		t.Fatalf("read geometry spec: %v", err)
	}
	if len(spec.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(spec.Lines))
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
}

func TestReadGeometryPairMismatch(t *testing.T) {
	d := newTestDecoder([]byte{0x28, 0x29}, format.VersionC, nil)
	_, err := d.ReadGeometryPair()
	if !errors.Is(err, fault.ErrTagMismatch) {
		t.Fatalf("expected ErrTagMismatch, got %v", err)
	}
	if off := fault.OffsetOf(err); off != 0 {
		t.Fatalf("error offset = %d, want 0", off)
	}
}

func TestReadGeometryPairUnknownTag(t *testing.T) {
	d := newTestDecoder([]byte{0x99, 0x99}, format.VersionC, nil)
	_, err := d.ReadGeometryPair()
	if !errors.Is(err, fault.ErrUnimplementedGeometry) {
		t.Fatalf("expected ErrUnimplementedGeometry, got %v", err)
	}
}

func TestReadSymbolVector(t *testing.T) {
	var sb streamBuilder
	sb.raw(0xde, 0xad). // leading bytes before the preamble
				preamble().
				i16(5).i16(-5).
				u16(1).
				raw(0x29).pad(1).raw(0x29). // nested line primitive
				i32(0).i32(0).i32(50).i32(0).u32(0).u32(0).
				preamble().
				str("V1").
				raw(symbolVectorTrailer...)
	d := newTestDecoder(sb.b, format.VersionC, nil)

	v, err := d.ReadSymbolVector()
	if err != nil {
		t.Fatalf("read symbol vector: %v", err)
	}
	if v.Name != "V1" || v.LocX != 5 || v.LocY != -5 {
		t.Fatalf("vector = %+v", v)
	}
	if len(v.Elements.Lines) != 1 || v.Elements.Lines[0].X2 != 50 {
		t.Fatalf("elements = %+v", v.Elements)
	}
	if !d.Cursor().EOF() {
		t.Fatalf("trailing bytes: %d left", d.Cursor().Remaining())
	}
}
