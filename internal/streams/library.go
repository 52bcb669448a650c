package streams

import (
	"time"

	"github.com/danmuck/orcadec/internal/decode"
)

// TextFont is one font definition from the symbols library stream.
type TextFont struct {
	Height     int32
	Width      int32
	Escapement uint16
	Weight     uint16
	Italic     uint16
	Name       string
}

// SymbolsLibrary is the library stream: file-level metadata, the font
// list, the shared string table every prefix pair index resolves
// against, and the part name list.
type SymbolsLibrary struct {
	Introduction string
	Created      time.Time
	Modified     time.Time
	Fonts        []TextFont
	Strings      decode.StringTable
	PartNames    []string
}

// ParseSymbolsLibrary decodes the library stream. It must be parsed
// before any structure-bearing stream: the string table it carries is
// what makes prefix pair indices resolvable at all.
func ParseSymbolsLibrary(d *decode.Decoder) (*SymbolsLibrary, error) {
	const op = "parseSymbolsLibrary"

	cur := d.Cursor()
	lib := &SymbolsLibrary{}
	var err error
	if lib.Introduction, err = cur.ReadString(op); err != nil {
		return nil, err
	}

	// Format revision words, constant across observed files.
	if err := cur.Discard(op, 4); err != nil {
		return nil, err
	}

	created, err := cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	modified, err := cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	lib.Created = time.Unix(int64(created), 0).UTC()
	lib.Modified = time.Unix(int64(modified), 0).UTC()

	if err := cur.Discard(op, 4); err != nil {
		return nil, err
	}

	fontCount, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	lib.Fonts = make([]TextFont, 0, fontCount)
	for i := uint16(0); i < fontCount; i++ {
		var f TextFont
		if f.Height, err = cur.ReadI32(op); err != nil {
			return nil, err
		}
		if f.Width, err = cur.ReadI32(op); err != nil {
			return nil, err
		}
		if f.Escapement, err = cur.ReadU16(op); err != nil {
			return nil, err
		}
		if f.Weight, err = cur.ReadU16(op); err != nil {
			return nil, err
		}
		if f.Italic, err = cur.ReadU16(op); err != nil {
			return nil, err
		}
		if f.Name, err = cur.ReadString(op); err != nil {
			return nil, err
		}
		lib.Fonts = append(lib.Fonts, f)
	}

	strCount, err := cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	lib.Strings = make(decode.StringTable, 0, strCount)
	for i := uint32(0); i < strCount; i++ {
		s, err := cur.ReadString(op)
		if err != nil {
			return nil, err
		}
		lib.Strings = append(lib.Strings, s)
	}

	partCount, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	lib.PartNames = make([]string, 0, partCount)
	for i := uint16(0); i < partCount; i++ {
		s, err := cur.ReadString(op)
		if err != nil {
			return nil, err
		}
		lib.PartNames = append(lib.PartNames, s)
	}

	if err := requireEOF(op, cur); err != nil {
		return nil, err
	}
	return lib, nil
}
