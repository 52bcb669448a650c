package format

import "fmt"

// PinShape is the drawn form of a symbol pin.
type PinShape uint16

const (
	PinShapeLine       PinShape = 0
	PinShapeClock      PinShape = 1
	PinShapeDot        PinShape = 2
	PinShapeDotClock   PinShape = 3
	PinShapeShort      PinShape = 4
	PinShapeShortClock PinShape = 5
	PinShapeZeroLength PinShape = 6
)

func (p PinShape) String() string {
	switch p {
	case PinShapeLine:
		return "Line"
	case PinShapeClock:
		return "Clock"
	case PinShapeDot:
		return "Dot"
	case PinShapeDotClock:
		return "DotClock"
	case PinShapeShort:
		return "Short"
	case PinShapeShortClock:
		return "ShortClock"
	case PinShapeZeroLength:
		return "ZeroLength"
	default:
		return fmt.Sprintf("PinShape(%d)", uint16(p))
	}
}

// PortType is the electrical direction of a pin.
type PortType uint32

const (
	PortInput         PortType = 0
	PortBidirectional PortType = 1
	PortOutput        PortType = 2
	PortOpenCollector PortType = 3
	PortPassive       PortType = 4
	PortThreeState    PortType = 5
	PortOpenEmitter   PortType = 6
	PortPower         PortType = 7
)

func (p PortType) String() string {
	switch p {
	case PortInput:
		return "Input"
	case PortBidirectional:
		return "Bidirectional"
	case PortOutput:
		return "Output"
	case PortOpenCollector:
		return "OpenCollector"
	case PortPassive:
		return "Passive"
	case PortThreeState:
		return "ThreeState"
	case PortOpenEmitter:
		return "OpenEmitter"
	case PortPower:
		return "Power"
	default:
		return fmt.Sprintf("PortType(%d)", uint32(p))
	}
}

// ComponentType classifies directory entries.
type ComponentType uint16

const (
	ComponentCell    ComponentType = 0x06
	ComponentPart    ComponentType = 0x18
	ComponentPackage ComponentType = 0x1f
	ComponentGraphic ComponentType = 0x21
	ComponentSymbol  ComponentType = 0x22
	ComponentView    ComponentType = 0x40
)

func (c ComponentType) String() string {
	switch c {
	case ComponentCell:
		return "Cell"
	case ComponentPart:
		return "Part"
	case ComponentPackage:
		return "Package"
	case ComponentGraphic:
		return "Graphic"
	case ComponentSymbol:
		return "Symbol"
	case ComponentView:
		return "View"
	default:
		return fmt.Sprintf("ComponentType(0x%02x)", uint16(c))
	}
}

// FileType is derived from the container file extension.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeLibrary
	FileTypeSchematic
)

func (f FileType) String() string {
	switch f {
	case FileTypeLibrary:
		return "Library"
	case FileTypeSchematic:
		return "Schematic"
	default:
		return "Unknown"
	}
}
