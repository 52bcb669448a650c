package decode

import (
	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

func readProperties(d *Decoder, tp TypePrefix) (Record, error) {
	const op = "readProperties"

	p := &PropertyBlock{Pairs: tp.Pairs}
	var err error
	if p.Ref, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00}); err != nil {
		return nil, err
	}

	viewOffset := d.cur.Offset()
	viewNumber, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	switch viewNumber {
	case 1: // normal view only
	case 2: // normal and convert views
		if p.ConvertName, err = d.cur.ReadString(op); err != nil {
			return nil, err
		}
		p.HasConvert = true
	default:
		return nil, fault.New(fault.ErrFormatAssumptionViolation, op, viewOffset,
			"viewNumber is %d, expected 1 or 2", viewNumber)
	}

	if p.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	// Trailing block looks a lot like another type-prefix; undecoded
	// until that is confirmed.
	d.future.Checkpoint()
	if err := d.cur.Discard(op, 29); err != nil {
		return nil, err
	}
	return p, nil
}

func readProperties2(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readProperties2"

	p := &PropertyBlock2{}
	var err error
	if p.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00}); err != nil {
		return nil, err
	}
	if p.RefDes, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00}); err != nil {
		return nil, err
	}
	if p.Footprint, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if p.SectionCount, err = d.cur.ReadU16(op); err != nil {
		return nil, err
	}
	return p, nil
}

// Separator bytes observed between pin names. The value shifts when
// extra pin properties are attached, so the set is permissive but
// closed.
var pinSeparators = map[uint8]bool{0x7f: true, 0xaa: true, 0xff: true}

func readPinIdxMapping(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readPinIdxMapping"

	m := &PinIdxMapping{}
	var err error
	if m.UnitRef, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if m.RefDes, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}

	pinCount, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	m.Pins = make([]PinEntry, 0, pinCount)
	for i := uint16(0); i < pinCount; i++ {
		name, err := d.cur.ReadString(op)
		if err != nil {
			return nil, err
		}
		sepOffset := d.cur.Offset()
		sep, err := d.cur.ReadU8(op)
		if err != nil {
			return nil, err
		}
		if !pinSeparators[sep] {
			return nil, fault.New(fault.ErrFormatAssumptionViolation, op, sepOffset,
				"pin separator 0x%02x, expected 0x7f, 0xaa or 0xff", sep)
		}
		m.Pins = append(m.Pins, PinEntry{Name: name, Sep: sep})
	}
	return m, nil
}

func (d *Decoder) readSymbolPin(op string) (SymbolPin, error) {
	var p SymbolPin
	var err error
	if p.Name, err = d.cur.ReadString(op); err != nil {
		return SymbolPin{}, err
	}
	if p.StartX, err = d.cur.ReadI32(op); err != nil {
		return SymbolPin{}, err
	}
	if p.StartY, err = d.cur.ReadI32(op); err != nil {
		return SymbolPin{}, err
	}
	if p.HotptX, err = d.cur.ReadI32(op); err != nil {
		return SymbolPin{}, err
	}
	if p.HotptY, err = d.cur.ReadI32(op); err != nil {
		return SymbolPin{}, err
	}
	shape, err := d.cur.ReadU16(op)
	if err != nil {
		return SymbolPin{}, err
	}
	p.Shape = format.PinShape(shape)
	if err := d.cur.Discard(op, 2); err != nil {
		return SymbolPin{}, err
	}
	port, err := d.cur.ReadU32(op)
	if err != nil {
		return SymbolPin{}, err
	}
	p.Port = format.PortType(port)
	if err := d.cur.Discard(op, 6); err != nil {
		return SymbolPin{}, err
	}
	return p, nil
}

func readSymbolPinScalar(d *Decoder, _ TypePrefix) (Record, error) {
	p, err := d.readSymbolPin("readSymbolPinScalar")
	if err != nil {
		return nil, err
	}
	return &SymbolPinScalar{SymbolPin: p}, nil
}

func readSymbolPinBus(d *Decoder, _ TypePrefix) (Record, error) {
	p, err := d.readSymbolPin("readSymbolPinBus")
	if err != nil {
		return nil, err
	}
	return &SymbolPinBus{SymbolPin: p}, nil
}

func readSymbolDisplayProp(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readSymbolDisplayProp"

	p := &SymbolDisplayProp{}
	idxOffset := d.cur.Offset()
	var err error
	if p.NameIdx, err = d.cur.ReadU32(op); err != nil {
		return nil, err
	}
	if p.Name, _, err = d.tbl.Resolve(op, idxOffset, p.NameIdx); err != nil {
		return nil, err
	}
	if p.X, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if p.Y, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}

	packedOffset := d.cur.Offset()
	packed, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	p.FontIdx = uint8(packed & 0xff) // bit 7 downto 0
	if reserved := (packed >> 8) & 0x3f; reserved != 0 {
		// bit 13 downto 8, meaning unknown
		return nil, fault.New(fault.ErrFormatAssumptionViolation, op, packedOffset,
			"reserved display-property bits set: 0x%02x", reserved)
	}
	p.Rotation = format.Rotation(packed >> 14) // bit 15 downto 14

	color, err := d.cur.ReadU8(op)
	if err != nil {
		return nil, err
	}
	p.Color = format.Color(color)

	// Relates to name/value visibility modes.
	if err := d.cur.Discard(op, 2); err != nil {
		return nil, err
	}
	if err := d.cur.Assume(op, []byte{0x00}); err != nil {
		return nil, err
	}
	return p, nil
}

func readPackageHeader(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readPackageHeader"

	h := &PackageHeader{}
	var err error
	if h.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if _, err = d.cur.ReadString(op); err != nil { // unidentified string
		return nil, err
	}
	if h.RefDes, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if _, err = d.cur.ReadString(op); err != nil { // unidentified string
		return nil, err
	}
	if h.PCBFootprint, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if h.UnitCount, err = d.cur.ReadU16(op); err != nil {
		return nil, err
	}
	return h, nil
}

// wireChildThreshold: an offset hint of exactly this value means the
// wire carries two bytes of tail padding; larger hints announce a
// count-prefixed child structure list (typically one alias).
const wireChildThreshold = 0x3d

func readWireScalar(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readWireScalar"

	// The hint cached from this wire's own prefix, captured before any
	// nested prefix overwrites it.
	hint := d.OffsetHint()

	w := &Wire{}
	var err error
	if w.DBID, err = d.cur.ReadU32(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 4); err != nil {
		return nil, err
	}
	color, err := d.cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	w.Color = format.Color(color)
	if w.StartX, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	if w.StartY, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	if w.EndX, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	if w.EndY, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 1); err != nil {
		return nil, err
	}

	// The tail layout depends on the hint; mark the split point so a
	// wrong branch shows up in the checkpoint audit.
	d.future.Checkpoint()
	switch {
	case hint == wireChildThreshold:
		if err := d.cur.Discard(op, 2); err != nil {
			return nil, err
		}
	case hint > wireChildThreshold:
		count, err := d.cur.ReadU16(op)
		if err != nil {
			return nil, err
		}
		for i := uint16(0); i < count; i++ {
			child, err := d.ReadStructure()
			if err != nil {
				return nil, err
			}
			w.Children = append(w.Children, child)
		}
	}

	if err := d.cur.Discard(op, 2); err != nil {
		return nil, err
	}
	width, err := d.cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	w.LineWidth = format.LineWidth(width)
	style, err := d.cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	w.LineStyle = format.LineStyle(style)
	return w, nil
}

func readAlias(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readAlias"

	a := &Alias{}
	var err error
	if a.LocX, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	if a.LocY, err = d.cur.ReadI32(op); err != nil {
		return nil, err
	}
	color, err := d.cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	a.Color = format.Color(color)
	rotation, err := d.cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	a.Rotation = format.Rotation(rotation)
	if a.FontIdx, err = d.cur.ReadU16(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 2); err != nil {
		return nil, err
	}
	if a.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	return a, nil
}

func readGraphicBoxInst(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readGraphicBoxInst"

	g := &GraphicBoxInst{}
	if err := d.cur.Discard(op, 11); err != nil {
		return nil, err
	}
	var err error
	if g.DBID, err = d.cur.ReadU32(op); err != nil {
		return nil, err
	}
	if g.LocY, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.LocX, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.Y2, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.X2, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.X1, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.Y1, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if g.Color, err = d.cur.ReadU16(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 5); err != nil {
		return nil, err
	}

	// Only a rect shape would make sense here, but the nested structure
	// carries its own tag.
	tp, err := d.ReadLongPrefix()
	if err != nil {
		return nil, err
	}
	if g.Child, err = d.Dispatch(tp); err != nil {
		return nil, err
	}
	return g, nil
}

func readGraphicCommentTextInst(d *Decoder, _ TypePrefix) (Record, error) {
	raw, err := d.cur.ReadBytes("readGraphicCommentTextInst", 34)
	if err != nil {
		return nil, err
	}
	return &GraphicCommentTextInst{Raw: raw}, nil
}

func readPartInst(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readPartInst"

	p := &PartInst{}
	if err := d.cur.Discard(op, 8); err != nil {
		return nil, err
	}
	var err error
	if p.PkgName, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if p.DBID, err = d.cur.ReadU32(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 8); err != nil {
		return nil, err
	}
	if p.LocX, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if p.LocY, err = d.cur.ReadI16(op); err != nil {
		return nil, err
	}
	if p.Color, err = d.cur.ReadU16(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 2); err != nil {
		return nil, err
	}

	count, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < count; i++ {
		child, err := d.ReadStructure()
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, child)
	}

	if err := d.cur.Discard(op, 1); err != nil {
		return nil, err
	}
	if p.Reference, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 14); err != nil {
		return nil, err
	}

	count2, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < count2; i++ {
		child, err := d.ReadStructure()
		if err != nil {
			return nil, err
		}
		p.Children2 = append(p.Children2, child)
	}

	if _, err := d.cur.ReadString(op); err != nil { // unverified string
		return nil, err
	}
	if err := d.cur.Discard(op, 2); err != nil {
		return nil, err
	}

	// Trailing long prefix plus preamble, content not retained.
	if err := d.cur.Discard(op, 18); err != nil {
		return nil, err
	}
	if _, err := d.ReadLongPrefix(); err != nil {
		return nil, err
	}
	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}
	return p, nil
}

func readInstWrapper(d *Decoder, _ TypePrefix) (Record, error) {
	raw, err := d.cur.ReadBytes("readInstWrapper", 16)
	if err != nil {
		return nil, err
	}
	return &InstWrapper{Raw: raw}, nil
}

func readPageInstGroup(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readPageInstGroup"

	g := &PageInstGroup{}
	if err := d.cur.Discard(op, 6); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 4); err != nil {
		return nil, err
	}
	count, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < count; i++ {
		tag, err := d.ReadGeometryPair()
		if err != nil {
			return nil, err
		}
		if err := d.ReadGeometry(tag, &g.Geometry); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (d *Decoder) readSymbolBBox() (SymbolBBox, error) {
	const op = "readSymbolBBox"

	var b SymbolBBox
	var err error
	if b.X1, err = d.cur.ReadI16(op); err != nil {
		return SymbolBBox{}, err
	}
	if b.Y1, err = d.cur.ReadI16(op); err != nil {
		return SymbolBBox{}, err
	}
	if b.X2, err = d.cur.ReadI16(op); err != nil {
		return SymbolBBox{}, err
	}
	if b.Y2, err = d.cur.ReadI16(op); err != nil {
		return SymbolBBox{}, err
	}
	if err := d.cur.Discard(op, 4); err != nil {
		return SymbolBBox{}, err
	}
	return b, nil
}

func readERCSymbol(d *Decoder, _ TypePrefix) (Record, error) {
	const op = "readERCSymbol"

	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}

	e := &ERCSymbol{}
	var err error
	if e.Name, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 3); err != nil {
		return nil, err
	}
	if err := d.cur.Discard(op, 4); err != nil {
		return nil, err
	}

	count, err := d.cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < count; i++ {
		tag, err := d.ReadGeometryPair()
		if err != nil {
			return nil, err
		}
		if err := d.ReadGeometry(tag, &e.Geometry); err != nil {
			return nil, err
		}
	}

	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}
	if e.BBox, err = d.readSymbolBBox(); err != nil {
		return nil, err
	}
	return e, nil
}

// ReadGeometrySpec decodes a named geometry specification: the body of
// every geometry-backed symbol variant. In version B streams every
// element after the first is preceded by a redundant full prefix; in
// version B and newer by a preamble; version A carries 8 trailing bytes
// per element instead.
func (d *Decoder) ReadGeometrySpec() (GeometrySpec, error) {
	const op = "readGeometrySpec"

	var spec GeometrySpec
	var err error
	if spec.Name, err = d.cur.ReadString(op); err != nil {
		return GeometrySpec{}, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00}); err != nil {
		return GeometrySpec{}, err
	}
	if err := d.cur.Assume(op, []byte{0x30}); err != nil {
		return GeometrySpec{}, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00}); err != nil {
		return GeometrySpec{}, err
	}

	count, err := d.cur.ReadU16(op)
	if err != nil {
		return GeometrySpec{}, err
	}
	for i := uint16(0); i < count; i++ {
		if i > 0 {
			if d.ver == format.VersionB {
				if _, err := d.ReadFullPrefix(); err != nil {
					return GeometrySpec{}, err
				}
			}
			if d.ver.AtLeast(format.VersionB) {
				if _, err := d.ReadPreamble(true); err != nil {
					return GeometrySpec{}, err
				}
			}
		}

		tag, err := d.ReadGeometryPair()
		if err != nil {
			return GeometrySpec{}, err
		}
		if err := d.ReadGeometry(tag, &spec); err != nil {
			return GeometrySpec{}, err
		}

		if d.ver == format.VersionA {
			if err := d.cur.Discard(op, 8); err != nil {
				return GeometrySpec{}, err
			}
		}
	}
	return spec, nil
}

func symbolGeometryReader(kind format.Structure, withPreamble bool) readerFunc {
	return func(d *Decoder, _ TypePrefix) (Record, error) {
		if withPreamble {
			if _, err := d.ReadPreamble(true); err != nil {
				return nil, err
			}
		}
		spec, err := d.ReadGeometrySpec()
		if err != nil {
			return nil, err
		}
		return &SymbolGeometry{Kind: kind, Spec: spec}, nil
	}
}

func readSymbolVectorStructure(d *Decoder, _ TypePrefix) (Record, error) {
	return d.ReadSymbolVector()
}

// ReadGeneralProperties decodes the part-property block shared by
// package and symbol streams.
func (d *Decoder) ReadGeneralProperties() (*GeneralProperties, error) {
	const op = "readGeneralProperties"

	g := &GeneralProperties{}
	var err error
	if g.ImplementationPath, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if g.Implementation, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if g.RefDes, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}
	if g.PartValue, err = d.cur.ReadString(op); err != nil {
		return nil, err
	}

	propOffset := d.cur.Offset()
	properties, err := d.cur.ReadU8(op)
	if err != nil {
		return nil, err
	}
	if properties&0xc0 != 0 {
		return nil, fault.New(fault.ErrFormatAssumptionViolation, op, propOffset,
			"expected 00xxxxxxb, got 0x%02x", properties)
	}
	pinProps := properties & 0x07
	g.PinNameVisible = pinProps&0x01 != 0
	g.PinNameRotate = pinProps&0x02 != 0
	g.PinNumberVisible = pinProps&0x04 == 0 // inverted on the wire
	g.ImplementationType = (properties >> 3) & 0x07

	if err := d.cur.Discard(op, 1); err != nil {
		return nil, err
	}
	return g, nil
}
