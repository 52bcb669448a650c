package decode

import (
	"fmt"
	"strings"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

// Point is one vertex of a variable-length drawing primitive.
type Point struct {
	X int16
	Y int16
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X1, Y1, X2, Y2 int32
	LineStyle      format.LineStyle
	LineWidth      format.LineWidth
	FillStyle      format.FillStyle
	HatchStyle     format.HatchStyle
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 int32
	LineStyle      format.LineStyle
	LineWidth      format.LineWidth
}

// Arc is an elliptic arc inside a bounding box.
type Arc struct {
	X1, Y1, X2, Y2 int32
	StartX, StartY int32
	EndX, EndY     int32
	LineStyle      format.LineStyle
	LineWidth      format.LineWidth
}

// Ellipse is a filled or outlined ellipse inside a bounding box.
type Ellipse struct {
	X1, Y1, X2, Y2 int32
	LineStyle      format.LineStyle
	LineWidth      format.LineWidth
	FillStyle      format.FillStyle
	HatchStyle     format.HatchStyle
}

// Polygon is a closed point sequence.
type Polygon struct {
	LineStyle  format.LineStyle
	LineWidth  format.LineWidth
	FillStyle  format.FillStyle
	HatchStyle format.HatchStyle
	Points     []Point
}

// Polyline is an open point sequence.
type Polyline struct {
	LineStyle format.LineStyle
	LineWidth format.LineWidth
	Points    []Point
}

// Bezier is a bezier path through a point sequence.
type Bezier struct {
	LineStyle format.LineStyle
	LineWidth format.LineWidth
	Points    []Point
}

// CommentText is free-standing text. Name holds the text content,
// unescaped, exactly as stored in the binary stream.
type CommentText struct {
	LocX, LocY     int32
	X1, Y1, X2, Y2 int32
	TextFontIdx    uint16
	Name           string
}

// Bitmap is an embedded image.
type Bitmap struct {
	LocX, LocY     int32
	X1, Y1, X2, Y2 int32
	Width, Height  uint32
	Data           []byte
}

// SymbolVector is a nested, named list of geometry elements.
type SymbolVector struct {
	LocX, LocY int16
	Name       string
	Elements   GeometrySpec
}

func (v *SymbolVector) ObjectType() format.Structure { return format.StructSymbolVector }

func (v *SymbolVector) String() string {
	return fmt.Sprintf("SymbolVector:\n  name = %s\n  loc = (%d, %d)\n", v.Name, v.LocX, v.LocY) +
		indent(v.Elements.String(), 1)
}

// GeometrySpec aggregates decoded drawing primitives into per-kind
// ordered sequences. Cross-kind interleave order from the byte stream
// is intentionally not preserved.
type GeometrySpec struct {
	Name          string
	Rects         []Rect
	Lines         []Line
	Arcs          []Arc
	Ellipses      []Ellipse
	Polygons      []Polygon
	Polylines     []Polyline
	CommentTexts  []CommentText
	Bitmaps       []Bitmap
	SymbolVectors []SymbolVector
	Beziers       []Bezier
}

// Count is the total number of aggregated elements.
func (g *GeometrySpec) Count() int {
	return len(g.Rects) + len(g.Lines) + len(g.Arcs) + len(g.Ellipses) +
		len(g.Polygons) + len(g.Polylines) + len(g.CommentTexts) +
		len(g.Bitmaps) + len(g.SymbolVectors) + len(g.Beziers)
}

func (g *GeometrySpec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GeometrySpec:\n")
	if g.Name != "" {
		fmt.Fprintf(&b, "  name = %s\n", g.Name)
	}
	fmt.Fprintf(&b, "  rects=%d lines=%d arcs=%d ellipses=%d polygons=%d polylines=%d texts=%d bitmaps=%d vectors=%d beziers=%d\n",
		len(g.Rects), len(g.Lines), len(g.Arcs), len(g.Ellipses), len(g.Polygons),
		len(g.Polylines), len(g.CommentTexts), len(g.Bitmaps), len(g.SymbolVectors), len(g.Beziers))
	return b.String()
}

// ReadGeometryPair reads the two discriminant bytes preceding every
// geometry element. They must agree; a mismatch is drift and fails
// before any primitive-specific bytes are consumed.
func (d *Decoder) ReadGeometryPair() (format.GeometryStructure, error) {
	const op = "readGeometryPair"

	start := d.cur.Offset()
	b1, err := d.cur.ReadU8(op)
	if err != nil {
		return 0, err
	}
	b2, err := d.cur.ReadU8(op)
	if err != nil {
		return 0, err
	}
	if b1 != b2 {
		return 0, fault.New(fault.ErrTagMismatch, op, start,
			"geometry tags 0x%02x and 0x%02x disagree", b1, b2)
	}
	g, ok := format.ToGeometryStructure(b1)
	if !ok {
		return 0, fault.New(fault.ErrUnimplementedGeometry, op, start,
			"tag 0x%02x outside the understood set", b1)
	}
	return g, nil
}

// ReadPrefixPrimitive reads the small paired prefix announcing a nested
// primitive: tag, one zero byte, tag again.
func (d *Decoder) ReadPrefixPrimitive() (format.Primitive, error) {
	const op = "readPrefixPrimitive"

	start := d.cur.Offset()
	b1, err := d.cur.ReadU8(op)
	if err != nil {
		return 0, err
	}
	if err := d.cur.Assume(op, []byte{0x00}); err != nil {
		return 0, err
	}
	b2, err := d.cur.ReadU8(op)
	if err != nil {
		return 0, err
	}
	if b1 != b2 {
		return 0, fault.New(fault.ErrTagMismatch, op, start,
			"primitive tags 0x%02x and 0x%02x disagree", b1, b2)
	}
	p, ok := format.ToPrimitive(b1)
	if !ok {
		return 0, fault.New(fault.ErrUnimplementedGeometry, op, start,
			"primitive tag 0x%02x outside the understood set", b1)
	}
	return p, nil
}

// ReadGeometry dispatches one drawing primitive by tag and appends it,
// order-preserving, to the caller's per-kind sequence.
func (d *Decoder) ReadGeometry(tag format.GeometryStructure, spec *GeometrySpec) error {
	const op = "readGeometryStructure"

	switch tag {
	case format.GeomRect:
		v, err := d.readRect()
		if err != nil {
			return err
		}
		spec.Rects = append(spec.Rects, v)
	case format.GeomLine:
		v, err := d.readLine()
		if err != nil {
			return err
		}
		spec.Lines = append(spec.Lines, v)
	case format.GeomArc:
		v, err := d.readArc()
		if err != nil {
			return err
		}
		spec.Arcs = append(spec.Arcs, v)
	case format.GeomEllipse:
		v, err := d.readEllipse()
		if err != nil {
			return err
		}
		spec.Ellipses = append(spec.Ellipses, v)
	case format.GeomPolygon:
		v, err := d.readPolygon()
		if err != nil {
			return err
		}
		spec.Polygons = append(spec.Polygons, v)
	case format.GeomPolyline:
		v, err := d.readPolyline()
		if err != nil {
			return err
		}
		spec.Polylines = append(spec.Polylines, v)
	case format.GeomCommentText:
		v, err := d.readCommentText()
		if err != nil {
			return err
		}
		spec.CommentTexts = append(spec.CommentTexts, v)
	case format.GeomBitmap:
		v, err := d.readBitmap()
		if err != nil {
			return err
		}
		spec.Bitmaps = append(spec.Bitmaps, v)
	case format.GeomSymbolVector:
		v, err := d.ReadSymbolVector()
		if err != nil {
			return err
		}
		spec.SymbolVectors = append(spec.SymbolVectors, *v)
	case format.GeomBezier:
		v, err := d.readBezier()
		if err != nil {
			return err
		}
		spec.Beziers = append(spec.Beziers, v)
	default:
		return fault.New(fault.ErrUnimplementedGeometry, op, d.cur.Offset(),
			"no decoder for %s", tag)
	}
	return nil
}

func (d *Decoder) readCoords32(op string) (x1, y1, x2, y2 int32, err error) {
	if x1, err = d.cur.ReadI32(op); err != nil {
		return
	}
	if y1, err = d.cur.ReadI32(op); err != nil {
		return
	}
	if x2, err = d.cur.ReadI32(op); err != nil {
		return
	}
	y2, err = d.cur.ReadI32(op)
	return
}

func (d *Decoder) readLineAttrs(op string) (format.LineStyle, format.LineWidth, error) {
	style, err := d.cur.ReadU32(op)
	if err != nil {
		return 0, 0, err
	}
	width, err := d.cur.ReadU32(op)
	if err != nil {
		return 0, 0, err
	}
	return format.LineStyle(style), format.LineWidth(width), nil
}

func (d *Decoder) readFillAttrs(op string) (format.FillStyle, format.HatchStyle, error) {
	fill, err := d.cur.ReadU32(op)
	if err != nil {
		return 0, 0, err
	}
	hatch, err := d.cur.ReadU32(op)
	if err != nil {
		return 0, 0, err
	}
	return format.FillStyle(fill), format.HatchStyle(hatch), nil
}

func (d *Decoder) readPoints(op string) ([]Point, error) {
	count, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	pts := make([]Point, 0, count)
	for i := uint16(0); i < count; i++ {
		x, err := d.cur.ReadI16(op)
		if err != nil {
			return nil, err
		}
		y, err := d.cur.ReadI16(op)
		if err != nil {
			return nil, err
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

func (d *Decoder) readRect() (Rect, error) {
	const op = "readRect"
	var r Rect
	var err error
	if r.X1, r.Y1, r.X2, r.Y2, err = d.readCoords32(op); err != nil {
		return Rect{}, err
	}
	if d.ver.AtLeast(format.VersionB) {
		if r.LineStyle, r.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Rect{}, err
		}
		if r.FillStyle, r.HatchStyle, err = d.readFillAttrs(op); err != nil {
			return Rect{}, err
		}
	}
	return r, nil
}

func (d *Decoder) readLine() (Line, error) {
	const op = "readLine"
	var l Line
	var err error
	if l.X1, l.Y1, l.X2, l.Y2, err = d.readCoords32(op); err != nil {
		return Line{}, err
	}
	if d.ver.AtLeast(format.VersionB) {
		if l.LineStyle, l.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Line{}, err
		}
	}
	return l, nil
}

func (d *Decoder) readArc() (Arc, error) {
	const op = "readArc"
	var a Arc
	var err error
	if a.X1, a.Y1, a.X2, a.Y2, err = d.readCoords32(op); err != nil {
		return Arc{}, err
	}
	if a.StartX, a.StartY, a.EndX, a.EndY, err = d.readCoords32(op); err != nil {
		return Arc{}, err
	}
	if d.ver.AtLeast(format.VersionB) {
		if a.LineStyle, a.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Arc{}, err
		}
	}
	return a, nil
}

func (d *Decoder) readEllipse() (Ellipse, error) {
	const op = "readEllipse"
	var e Ellipse
	var err error
	if e.X1, e.Y1, e.X2, e.Y2, err = d.readCoords32(op); err != nil {
		return Ellipse{}, err
	}
	if d.ver.AtLeast(format.VersionB) {
		if e.LineStyle, e.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Ellipse{}, err
		}
		if e.FillStyle, e.HatchStyle, err = d.readFillAttrs(op); err != nil {
			return Ellipse{}, err
		}
	}
	return e, nil
}

func (d *Decoder) readPolygon() (Polygon, error) {
	const op = "readPolygon"
	var p Polygon
	var err error
	if d.ver.AtLeast(format.VersionB) {
		if p.LineStyle, p.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Polygon{}, err
		}
		if p.FillStyle, p.HatchStyle, err = d.readFillAttrs(op); err != nil {
			return Polygon{}, err
		}
	}
	if p.Points, err = d.readPoints(op); err != nil {
		return Polygon{}, err
	}
	return p, nil
}

func (d *Decoder) readPolyline() (Polyline, error) {
	const op = "readPolyline"
	var p Polyline
	var err error
	if d.ver.AtLeast(format.VersionB) {
		if p.LineStyle, p.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Polyline{}, err
		}
	}
	if p.Points, err = d.readPoints(op); err != nil {
		return Polyline{}, err
	}
	return p, nil
}

func (d *Decoder) readBezier() (Bezier, error) {
	const op = "readBezier"
	var bz Bezier
	var err error
	if d.ver.AtLeast(format.VersionB) {
		if bz.LineStyle, bz.LineWidth, err = d.readLineAttrs(op); err != nil {
			return Bezier{}, err
		}
	}
	if bz.Points, err = d.readPoints(op); err != nil {
		return Bezier{}, err
	}
	return bz, nil
}

func (d *Decoder) readCommentText() (CommentText, error) {
	const op = "readCommentText"
	var t CommentText
	var err error
	if t.LocX, err = d.cur.ReadI32(op); err != nil {
		return CommentText{}, err
	}
	if t.LocY, err = d.cur.ReadI32(op); err != nil {
		return CommentText{}, err
	}
	if t.X1, t.Y1, t.X2, t.Y2, err = d.readCoords32(op); err != nil {
		return CommentText{}, err
	}
	if t.TextFontIdx, err = d.cur.ReadU16(op); err != nil {
		return CommentText{}, err
	}
	if t.Name, err = d.cur.ReadString(op); err != nil {
		return CommentText{}, err
	}
	return t, nil
}

func (d *Decoder) readBitmap() (Bitmap, error) {
	const op = "readBitmap"
	var bm Bitmap
	var err error
	if bm.LocX, err = d.cur.ReadI32(op); err != nil {
		return Bitmap{}, err
	}
	if bm.LocY, err = d.cur.ReadI32(op); err != nil {
		return Bitmap{}, err
	}
	if bm.X1, bm.Y1, bm.X2, bm.Y2, err = d.readCoords32(op); err != nil {
		return Bitmap{}, err
	}
	if bm.Width, err = d.cur.ReadU32(op); err != nil {
		return Bitmap{}, err
	}
	if bm.Height, err = d.cur.ReadU32(op); err != nil {
		return Bitmap{}, err
	}
	dataSize, err := d.cur.ReadU32(op)
	if err != nil {
		return Bitmap{}, err
	}
	if bm.Data, err = d.cur.ReadBytes(op, int(dataSize)); err != nil {
		return Bitmap{}, err
	}
	return bm, nil
}

// symbolVectorTrailer is the fixed tail observed after every
// symbol-vector name.
var symbolVectorTrailer = []byte{
	0x00, 0x00, 0x00, 0x00, 0x32, 0x00, 0x32, 0x00, 0x00, 0x00, 0x02, 0x00,
}

// ReadSymbolVector decodes a nested, named geometry list. The start
// offset of a symbol vector cannot yet be computed deterministically,
// so it resynchronizes on the next preamble first.
func (d *Decoder) ReadSymbolVector() (*SymbolVector, error) {
	const op = "readSymbolVector"

	if err := d.enter(op); err != nil {
		return nil, err
	}
	defer d.leave()

	if err := d.DiscardUntilPreamble(); err != nil {
		return nil, err
	}
	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}

	v := &SymbolVector{}
	var err error
	if v.LocX, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if v.LocY, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}

	repetition, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < repetition; i++ {
		if i > 0 {
			if _, err := d.ReadPreamble(true); err != nil {
				return nil, err
			}
		}
		prim, err := d.ReadPrefixPrimitive()
		if err != nil {
			return nil, err
		}
		if err := d.ReadGeometry(prim.Geometry(), &v.Elements); err != nil {
			return nil, err
		}
	}

	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}
	if v.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Assume(op, symbolVectorTrailer); err != nil {
		return nil, err
	}
	return v, nil
}
