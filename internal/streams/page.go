package streams

import (
	"time"

	"github.com/danmuck/orcadec/internal/decode"
	"github.com/danmuck/orcadec/internal/format"
)

// GridReference is one axis of the page's grid reference settings.
type GridReference struct {
	Count      uint16
	Width      uint32
	Alphabetic bool
	Ascending  bool
}

// Page is a decoded schematic page stream.
type Page struct {
	Name     string
	PageSize string
	Created  time.Time
	Modified time.Time

	Width    uint32
	Height   uint32
	PinToPin uint32

	Horizontal GridReference
	Vertical   GridReference

	IsMetric            bool
	BorderDisplayed     bool
	BorderPrinted       bool
	GridRefDisplayed    bool
	GridRefPrinted      bool
	TitleblockDisplayed bool
	TitleblockPrinted   bool
	ANSIGridRefs        bool

	NetNames []string

	// Placed structures, in stream order within each list.
	Wires     []decode.Record
	Instances []decode.Record
	Trailing  []decode.Record
}

// ParsePage decodes a schematic page stream: the page settings header
// followed by the wire, instance and trailing structure lists. The
// first instance entry uses a prefix shape that is not decoded yet, so
// its header bytes are skipped and the body read as a part instance.
func ParsePage(d *decode.Decoder) (*Page, error) {
	const op = "parsePage"

	cur := d.Cursor()
	p := &Page{}

	if err := cur.Discard(op, 21); err != nil {
		return nil, err
	}
	if _, err := d.ReadPreamble(true); err != nil {
		return nil, err
	}

	var err error
	if p.Name, err = cur.ReadString(op); err != nil {
		return nil, err
	}
	if p.PageSize, err = cur.ReadString(op); err != nil {
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
	p.Created = time.Unix(int64(created), 0).UTC()
	p.Modified = time.Unix(int64(modified), 0).UTC()

	if err := cur.Discard(op, 16); err != nil {
		return nil, err
	}
	if p.Width, err = cur.ReadU32(op); err != nil {
		return nil, err
	}
	if p.Height, err = cur.ReadU32(op); err != nil {
		return nil, err
	}
	if p.PinToPin, err = cur.ReadU32(op); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 2); err != nil {
		return nil, err
	}
	if p.Horizontal.Count, err = cur.ReadU16(op); err != nil {
		return nil, err
	}
	if p.Vertical.Count, err = cur.ReadU16(op); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 2); err != nil {
		return nil, err
	}
	if p.Horizontal.Width, err = cur.ReadU32(op); err != nil {
		return nil, err
	}
	if p.Vertical.Width, err = cur.ReadU32(op); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 48); err != nil {
		return nil, err
	}

	readBool := func() (bool, error) {
		v, err := cur.ReadU32(op)
		return v != 0, err
	}

	if p.Horizontal.Alphabetic, err = readBool(); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 4); err != nil {
		return nil, err
	}
	if p.Horizontal.Ascending, err = readBool(); err != nil {
		return nil, err
	}
	if p.Vertical.Alphabetic, err = readBool(); err != nil {
		return nil, err
	}
	if err := cur.Discard(op, 4); err != nil {
		return nil, err
	}
	if p.Vertical.Ascending, err = readBool(); err != nil {
		return nil, err
	}

	for _, dst := range []*bool{
		&p.IsMetric, &p.BorderDisplayed, &p.BorderPrinted,
		&p.GridRefDisplayed, &p.GridRefPrinted,
		&p.TitleblockDisplayed, &p.TitleblockPrinted, &p.ANSIGridRefs,
	} {
		if *dst, err = readBool(); err != nil {
			return nil, err
		}
	}

	lenA, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < lenA; i++ {
		if err := cur.Discard(op, 8); err != nil {
			return nil, err
		}
	}

	len0, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < len0; i++ {
		if err := cur.Discard(op, 32); err != nil {
			return nil, err
		}
	}

	if err := cur.Discard(op, 2); err != nil {
		return nil, err
	}

	netLen, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < netLen; i++ {
		name, err := cur.ReadString(op)
		if err != nil {
			return nil, err
		}
		if err := cur.Discard(op, 4); err != nil {
			return nil, err
		}
		p.NetNames = append(p.NetNames, name)
	}

	wireLen, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < wireLen; i++ {
		rec, err := d.ReadStructure()
		if err != nil {
			return nil, err
		}
		p.Wires = append(p.Wires, rec)
	}

	instLen, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < instLen; i++ {
		var rec decode.Record
		if i == 0 {
			// The first instance carries an undeciphered extra-long
			// prefix shape. Skip its header and read the body as a part
			// instance.
			if err := cur.Discard(op, 47); err != nil {
				return nil, err
			}
			rec, err = d.Dispatch(decode.TypePrefix{Tag: format.StructPartInst})
		} else {
			rec, err = d.ReadStructure()
		}
		if err != nil {
			return nil, err
		}
		p.Instances = append(p.Instances, rec)
	}

	if err := cur.Discard(op, 10); err != nil {
		return nil, err
	}

	tailLen, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < tailLen; i++ {
		rec, err := d.ReadStructure()
		if err != nil {
			return nil, err
		}
		p.Trailing = append(p.Trailing, rec)
	}

	if err := requireEOF(op, cur); err != nil {
		return nil, err
	}
	return p, nil
}
