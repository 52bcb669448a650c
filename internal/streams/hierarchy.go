package streams

import (
	"github.com/danmuck/orcadec/internal/decode"
)

// HierarchyNet is one flattened net of a hierarchy stream.
type HierarchyNet struct {
	DBID uint32
	Name string
}

// Hierarchy is a decoded hierarchy stream: the schematic it describes
// and its flattened net list.
type Hierarchy struct {
	SchematicName string
	Nets          []HierarchyNet
}

// ParseHierarchy decodes a hierarchy stream. Net entries use the short
// prefix shape followed by an unconditional preamble.
func ParseHierarchy(d *decode.Decoder) (*Hierarchy, error) {
	const op = "parseHierarchy"

	cur := d.Cursor()
	h := &Hierarchy{}

	if err := cur.Discard(op, 9); err != nil {
		return nil, err
	}
	var err error
	if h.SchematicName, err = cur.ReadString(op); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 9); err != nil {
		return nil, err
	}

	netLen, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	h.Nets = make([]HierarchyNet, 0, netLen)
	for i := uint16(0); i < netLen; i++ {
		if _, err := d.ReadShortPrefix(); err != nil {
			return nil, err
		}
		if _, err := d.ReadPreamble(true); err != nil {
			return nil, err
		}

		var net HierarchyNet
		if net.DBID, err = cur.ReadU32(op); err != nil {
			return nil, err
		}
		if net.Name, err = cur.ReadString(op); err != nil {
			return nil, err
		}
		h.Nets = append(h.Nets, net)
	}
	return h, nil
}
