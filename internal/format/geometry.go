package format

import "fmt"

// GeometryStructure identifies a drawing primitive inside a geometry
// specification.
type GeometryStructure uint8

const (
	GeomRect         GeometryStructure = 0x28
	GeomLine         GeometryStructure = 0x29
	GeomArc          GeometryStructure = 0x2a
	GeomEllipse      GeometryStructure = 0x2b
	GeomPolygon      GeometryStructure = 0x2c
	GeomPolyline     GeometryStructure = 0x2d
	GeomCommentText  GeometryStructure = 0x30
	GeomSymbolVector GeometryStructure = 0x31
	GeomBitmap       GeometryStructure = 0x32
	GeomBezier       GeometryStructure = 0x57
)

var geometryNames = map[GeometryStructure]string{
	GeomRect:         "Rect",
	GeomLine:         "Line",
	GeomArc:          "Arc",
	GeomEllipse:      "Ellipse",
	GeomPolygon:      "Polygon",
	GeomPolyline:     "Polyline",
	GeomCommentText:  "CommentText",
	GeomSymbolVector: "SymbolVector",
	GeomBitmap:       "Bitmap",
	GeomBezier:       "Bezier",
}

// GeometryStructures returns every known geometry tag.
func GeometryStructures() []GeometryStructure {
	out := make([]GeometryStructure, 0, len(geometryNames))
	for g := range geometryNames {
		out = append(out, g)
	}
	return out
}

// ToGeometryStructure reports whether b encodes a known geometry tag.
func ToGeometryStructure(b uint8) (GeometryStructure, bool) {
	g := GeometryStructure(b)
	_, ok := geometryNames[g]
	return g, ok
}

func (g GeometryStructure) String() string {
	if name, ok := geometryNames[g]; ok {
		return name
	}
	return fmt.Sprintf("GeometryStructure(0x%02x)", uint8(g))
}

// Primitive identifies a finer-grained record nested inside certain
// composite structures. On the wire primitives share the geometry tag
// space but are announced through a small paired prefix instead of the
// two raw discriminant bytes.
type Primitive uint8

// ToPrimitive reports whether b encodes a known primitive tag.
func ToPrimitive(b uint8) (Primitive, bool) {
	_, ok := geometryNames[GeometryStructure(b)]
	return Primitive(b), ok
}

// Geometry maps a primitive onto the geometry kind it encodes.
func (p Primitive) Geometry() GeometryStructure {
	return GeometryStructure(p)
}

func (p Primitive) String() string {
	return GeometryStructure(p).String()
}
