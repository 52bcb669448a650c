package format

import "fmt"

// Display attributes referenced by wires, aliases and drawing
// primitives. Raw values are stored as observed; only a handful have a
// confirmed meaning, the rest render numerically.

type Color uint32

const (
	ColorDefault Color = 0x30
)

func (c Color) String() string {
	if c == ColorDefault {
		return "Default"
	}
	return fmt.Sprintf("Color(0x%02x)", uint32(c))
}

type LineStyle uint32

const (
	LineStyleSolid      LineStyle = 0
	LineStyleDash       LineStyle = 1
	LineStyleDot        LineStyle = 2
	LineStyleDashDot    LineStyle = 3
	LineStyleDashDotDot LineStyle = 4
	LineStyleDefault    LineStyle = 5
)

func (s LineStyle) String() string {
	switch s {
	case LineStyleSolid:
		return "Solid"
	case LineStyleDash:
		return "Dash"
	case LineStyleDot:
		return "Dot"
	case LineStyleDashDot:
		return "DashDot"
	case LineStyleDashDotDot:
		return "DashDotDot"
	case LineStyleDefault:
		return "Default"
	default:
		return fmt.Sprintf("LineStyle(%d)", uint32(s))
	}
}

type LineWidth uint32

const (
	LineWidthThin    LineWidth = 0
	LineWidthMedium  LineWidth = 1
	LineWidthWide    LineWidth = 2
	LineWidthDefault LineWidth = 3
)

func (w LineWidth) String() string {
	switch w {
	case LineWidthThin:
		return "Thin"
	case LineWidthMedium:
		return "Medium"
	case LineWidthWide:
		return "Wide"
	case LineWidthDefault:
		return "Default"
	default:
		return fmt.Sprintf("LineWidth(%d)", uint32(w))
	}
}

type FillStyle uint32

const (
	FillStyleNone  FillStyle = 0
	FillStyleSolid FillStyle = 1
)

func (f FillStyle) String() string {
	switch f {
	case FillStyleNone:
		return "None"
	case FillStyleSolid:
		return "Solid"
	default:
		return fmt.Sprintf("FillStyle(%d)", uint32(f))
	}
}

type HatchStyle uint32

func (h HatchStyle) String() string {
	return fmt.Sprintf("HatchStyle(%d)", uint32(h))
}

// Rotation is a quarter-turn count, decoded from the top two bits of
// the display-property bitmap.
type Rotation uint8

const (
	RotationDeg0   Rotation = 0
	RotationDeg90  Rotation = 1
	RotationDeg180 Rotation = 2
	RotationDeg270 Rotation = 3
)

func (r Rotation) String() string {
	switch r {
	case RotationDeg0:
		return "0deg"
	case RotationDeg90:
		return "90deg"
	case RotationDeg180:
		return "180deg"
	case RotationDeg270:
		return "270deg"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}
