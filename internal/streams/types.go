package streams

import (
	"github.com/danmuck/orcadec/internal/decode"
	"github.com/danmuck/orcadec/internal/format"
)

// Type is one entry of a type registry stream.
type Type struct {
	Name          string
	ComponentType format.ComponentType
}

// ParseTypes decodes a type registry stream. The stream may be
// completely empty.
func ParseTypes(d *decode.Decoder) ([]Type, error) {
	const op = "parseTypes"

	cur := d.Cursor()
	var types []Type
	for !cur.EOF() {
		var t Type
		var err error
		if t.Name, err = cur.ReadString(op); err != nil {
			return nil, err
		}
		ct, err := cur.ReadU16(op)
		if err != nil {
			return nil, err
		}
		t.ComponentType = format.ComponentType(ct)
		types = append(types, t)
	}
	return types, nil
}
