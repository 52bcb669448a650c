package decode

import (
	"fmt"
	"strings"

	"github.com/danmuck/orcadec/internal/format"
)

// Record is one decoded structure. Records are plain values strictly
// owned by their parent container; ownership is tree-shaped.
type Record interface {
	ObjectType() format.Structure
	fmt.Stringer
}

func indent(s string, level int) string {
	pad := strings.Repeat("  ", level)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n") + "\n"
}

// PropertyBlock is the property-block structure: symbol reference,
// property name, and the optional convert-view name.
type PropertyBlock struct {
	Ref         string
	Name        string
	ConvertName string
	HasConvert  bool
	Pairs       []PropPair
}

func (p *PropertyBlock) ObjectType() format.Structure { return format.StructProperties }

func (p *PropertyBlock) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Properties:\n")
	fmt.Fprintf(&b, "  ref  = %s\n", p.Ref)
	fmt.Fprintf(&b, "  name = %s\n", p.Name)
	if p.HasConvert {
		fmt.Fprintf(&b, "  convertName = %s\n", p.ConvertName)
	}
	for _, pair := range p.Pairs {
		fmt.Fprintf(&b, "  %s <- %s\n", pair.Name, pair.Value)
	}
	return b.String()
}

// PropertyBlock2 is the second property-block shape used by library
// streams.
type PropertyBlock2 struct {
	Name         string
	RefDes       string
	Footprint    string
	SectionCount uint16
}

func (p *PropertyBlock2) ObjectType() format.Structure { return format.StructProperties2 }

func (p *PropertyBlock2) String() string {
	return fmt.Sprintf("Properties2:\n  name = %s\n  refDes = %s\n  footprint = %s\n  sectionCount = %d\n",
		p.Name, p.RefDes, p.Footprint, p.SectionCount)
}

// PinEntry is one pin of a pin-index mapping. Sep is the observed
// separator byte; only a small sentinel set is accepted.
type PinEntry struct {
	Name string
	Sep  uint8
}

// PinIdxMapping maps ordered pin names of one unit.
type PinIdxMapping struct {
	UnitRef string
	RefDes  string
	Pins    []PinEntry
}

func (p *PinIdxMapping) ObjectType() format.Structure { return format.StructPinIdxMapping }

func (p *PinIdxMapping) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PinIdxMapping:\n  unitRef = %s\n  refDes = %s\n", p.UnitRef, p.RefDes)
	for i, pin := range p.Pins {
		fmt.Fprintf(&b, "  %d: %s\n", i, pin.Name)
	}
	return b.String()
}

// SymbolPin is the shared layout of scalar and bus pin records.
type SymbolPin struct {
	Name   string
	StartX int32
	StartY int32
	HotptX int32
	HotptY int32
	Shape  format.PinShape
	Port   format.PortType
}

func (p *SymbolPin) text(kind string) string {
	return fmt.Sprintf("%s:\n  name = %s\n  start = (%d, %d)\n  hotpt = (%d, %d)\n  shape = %s\n  port = %s\n",
		kind, p.Name, p.StartX, p.StartY, p.HotptX, p.HotptY, p.Shape, p.Port)
}

// SymbolPinScalar is a single-net pin.
type SymbolPinScalar struct{ SymbolPin }

func (p *SymbolPinScalar) ObjectType() format.Structure { return format.StructSymbolPinScalar }
func (p *SymbolPinScalar) String() string               { return p.text("SymbolPinScalar") }

// SymbolPinBus is a bus pin.
type SymbolPinBus struct{ SymbolPin }

func (p *SymbolPinBus) ObjectType() format.Structure { return format.StructSymbolPinBus }
func (p *SymbolPinBus) String() string               { return p.text("SymbolPinBus") }

// SymbolDisplayProp places one named property on a drawn symbol.
type SymbolDisplayProp struct {
	NameIdx  uint32
	Name     string
	X        int16
	Y        int16
	FontIdx  uint8
	Rotation format.Rotation
	Color    format.Color
}

func (p *SymbolDisplayProp) ObjectType() format.Structure { return format.StructSymbolDisplayProp }

func (p *SymbolDisplayProp) String() string {
	return fmt.Sprintf("SymbolDisplayProp:\n  name = %s\n  loc = (%d, %d)\n  fontIdx = %d\n  rotation = %s\n  color = %s\n",
		p.Name, p.X, p.Y, p.FontIdx, p.Rotation, p.Color)
}

// PackageHeader is the package-level header record (observed tag 0x1f).
type PackageHeader struct {
	Name         string
	RefDes       string
	PCBFootprint string
	UnitCount    uint16
}

func (p *PackageHeader) ObjectType() format.Structure { return format.StructT0x1f }

func (p *PackageHeader) String() string {
	return fmt.Sprintf("PackageHeader:\n  name = %s\n  refDes = %s\n  pcbFootprint = %s\n  unitCount = %d\n",
		p.Name, p.RefDes, p.PCBFootprint, p.UnitCount)
}

// Wire is a scalar wire segment of a schematic page.
type Wire struct {
	DBID      uint32
	Color     format.Color
	StartX    int32
	StartY    int32
	EndX      int32
	EndY      int32
	LineWidth format.LineWidth
	LineStyle format.LineStyle
	Children  []Record
}

func (w *Wire) ObjectType() format.Structure { return format.StructWireScalar }

func (w *Wire) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "WireScalar:\n  dbId = %d\n  (%d, %d) -> (%d, %d)\n  width = %s, style = %s\n",
		w.DBID, w.StartX, w.StartY, w.EndX, w.EndY, w.LineWidth, w.LineStyle)
	for _, c := range w.Children {
		b.WriteString(indent(c.String(), 1))
	}
	return b.String()
}

// Alias is a net alias placed on a page.
type Alias struct {
	LocX     int32
	LocY     int32
	Color    format.Color
	Rotation format.Rotation
	FontIdx  uint16
	Name     string
}

func (a *Alias) ObjectType() format.Structure { return format.StructAlias }

func (a *Alias) String() string {
	return fmt.Sprintf("Alias:\n  name = %s\n  loc = (%d, %d)\n  rotation = %s\n",
		a.Name, a.LocX, a.LocY, a.Rotation)
}

// GraphicBoxInst is a placed box graphic with one nested structure.
type GraphicBoxInst struct {
	DBID  uint32
	LocX  int16
	LocY  int16
	X1    int16
	Y1    int16
	X2    int16
	Y2    int16
	Color uint16
	Child Record
}

func (g *GraphicBoxInst) ObjectType() format.Structure { return format.StructGraphicBoxInst }

func (g *GraphicBoxInst) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GraphicBoxInst:\n  dbId = %d\n  loc = (%d, %d)\n  box = (%d, %d)-(%d, %d)\n",
		g.DBID, g.LocX, g.LocY, g.X1, g.Y1, g.X2, g.Y2)
	if g.Child != nil {
		b.WriteString(indent(g.Child.String(), 1))
	}
	return b.String()
}

// GraphicCommentTextInst is a placed comment text instance. Its body is
// not yet understood; the record preserves the raw span.
type GraphicCommentTextInst struct {
	Raw []byte
}

func (g *GraphicCommentTextInst) ObjectType() format.Structure {
	return format.StructGraphicCommentTextInst
}

func (g *GraphicCommentTextInst) String() string {
	return fmt.Sprintf("GraphicCommentTextInst: %d undecoded byte\n", len(g.Raw))
}

// PartInst is a placed package instance on a page.
type PartInst struct {
	PkgName   string
	DBID      uint32
	LocX      int16
	LocY      int16
	Color     uint16
	Reference string
	Children  []Record
	Children2 []Record
}

func (p *PartInst) ObjectType() format.Structure { return format.StructPartInst }

func (p *PartInst) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PartInst:\n  pkgName = %s\n  reference = %s\n  dbId = %d\n  loc = (%d, %d)\n",
		p.PkgName, p.Reference, p.DBID, p.LocX, p.LocY)
	for _, c := range p.Children {
		b.WriteString(indent(c.String(), 1))
	}
	for _, c := range p.Children2 {
		b.WriteString(indent(c.String(), 1))
	}
	return b.String()
}

// InstWrapper is the not-yet-understood record tagged 0x10, probably a
// wrapper around instances.
type InstWrapper struct {
	Raw []byte
}

func (i *InstWrapper) ObjectType() format.Structure { return format.StructT0x10 }

func (i *InstWrapper) String() string {
	return fmt.Sprintf("T0x10: %d undecoded byte\n", len(i.Raw))
}

// SymbolBBox is the bounding box trailing drawn symbols.
type SymbolBBox struct {
	X1, Y1, X2, Y2 int16
}

func (b SymbolBBox) text() string {
	return fmt.Sprintf("bbox = (%d, %d)-(%d, %d)", b.X1, b.Y1, b.X2, b.Y2)
}

// PageInstGroup wraps the geometry list observed at the start of page
// streams (tag 0x02), probably an instance group.
type PageInstGroup struct {
	Geometry GeometrySpec
}

func (p *PageInstGroup) ObjectType() format.Structure { return format.StructSthInPages0 }

func (p *PageInstGroup) String() string {
	return "PageInstGroup:\n" + indent(p.Geometry.String(), 1)
}

// ERCSymbol is a drawn ERC marker symbol.
type ERCSymbol struct {
	Name     string
	Geometry GeometrySpec
	BBox     SymbolBBox
}

func (e *ERCSymbol) ObjectType() format.Structure { return format.StructERCSymbol }

func (e *ERCSymbol) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERCSymbol:\n  name = %s\n  %s\n", e.Name, e.BBox.text())
	b.WriteString(indent(e.Geometry.String(), 1))
	return b.String()
}

// SymbolGeometry is a drawn symbol variant whose body is a geometry
// specification: global, port, off-page, pin-shape and title-block
// symbols plus the bare geometry definition.
type SymbolGeometry struct {
	Kind format.Structure
	Spec GeometrySpec
}

func (s *SymbolGeometry) ObjectType() format.Structure { return s.Kind }

func (s *SymbolGeometry) String() string {
	return s.Kind.String() + ":\n" + indent(s.Spec.String(), 1)
}

// GeneralProperties are the package-level part properties shared by
// symbol and package streams.
type GeneralProperties struct {
	ImplementationPath string
	Implementation     string
	RefDes             string
	PartValue          string
	PinNameVisible     bool
	PinNameRotate      bool
	PinNumberVisible   bool
	ImplementationType uint8
}

func (g *GeneralProperties) String() string {
	return fmt.Sprintf("GeneralProperties:\n  refDes = %s\n  partValue = %s\n  implementation = %s (%s)\n",
		g.RefDes, g.PartValue, g.Implementation, g.ImplementationPath)
}
