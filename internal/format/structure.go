package format

import "fmt"

// Structure identifies a top-level record kind in a stream. The set is
// closed: tags outside it are a decode failure, never a guess.
type Structure uint8

const (
	StructSthInPages0            Structure = 0x02
	StructProperties             Structure = 0x06
	StructProperties2            Structure = 0x0b
	StructPartInst               Structure = 0x0d
	StructT0x10                  Structure = 0x10
	StructWireScalar             Structure = 0x14
	StructT0x1f                  Structure = 0x1f
	StructPinIdxMapping          Structure = 0x20
	StructGlobalSymbol           Structure = 0x21
	StructPortSymbol             Structure = 0x22
	StructOffPageSymbol          Structure = 0x23
	StructGeoDefinition          Structure = 0x24
	StructSymbolDisplayProp      Structure = 0x25
	StructSymbolVector           Structure = 0x26
	StructAlias                  Structure = 0x2c
	StructGraphicCommentTextInst Structure = 0x34
	StructGraphicBoxInst         Structure = 0x37
	StructTitleBlockSymbol       Structure = 0x40
	StructERCSymbol              Structure = 0x4b
	StructSymbolPinScalar        Structure = 0x48
	StructSymbolPinBus           Structure = 0x49
	StructPinShapeSymbol         Structure = 0x62
)

var structureNames = map[Structure]string{
	StructSthInPages0:            "SthInPages0",
	StructProperties:             "Properties",
	StructProperties2:            "Properties2",
	StructPartInst:               "PartInst",
	StructT0x10:                  "T0x10",
	StructWireScalar:             "WireScalar",
	StructT0x1f:                  "T0x1f",
	StructPinIdxMapping:          "PinIdxMapping",
	StructGlobalSymbol:           "GlobalSymbol",
	StructPortSymbol:             "PortSymbol",
	StructOffPageSymbol:          "OffPageSymbol",
	StructGeoDefinition:          "GeoDefinition",
	StructSymbolDisplayProp:      "SymbolDisplayProp",
	StructSymbolVector:           "SymbolVector",
	StructAlias:                  "Alias",
	StructGraphicCommentTextInst: "GraphicCommentTextInst",
	StructGraphicBoxInst:         "GraphicBoxInst",
	StructTitleBlockSymbol:       "TitleBlockSymbol",
	StructERCSymbol:              "ERCSymbol",
	StructSymbolPinScalar:        "SymbolPinScalar",
	StructSymbolPinBus:           "SymbolPinBus",
	StructPinShapeSymbol:         "PinShapeSymbol",
}

// Structures returns every known structure tag. The slice is freshly
// allocated; callers may sort or filter it.
func Structures() []Structure {
	out := make([]Structure, 0, len(structureNames))
	for s := range structureNames {
		out = append(out, s)
	}
	return out
}

// ToStructure reports whether b encodes a known structure tag.
func ToStructure(b uint8) (Structure, bool) {
	s := Structure(b)
	_, ok := structureNames[s]
	return s, ok
}

func (s Structure) String() string {
	if name, ok := structureNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Structure(0x%02x)", uint8(s))
}
