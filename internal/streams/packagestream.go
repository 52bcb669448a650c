package streams

import (
	"github.com/danmuck/orcadec/internal/decode"
	"github.com/danmuck/orcadec/internal/fault"
)

// Package is a decoded package stream: property blocks, the primitive
// structures grouped under each, and the trailing package header.
type Package struct {
	Properties []*decode.PropertyBlock
	Primitives []decode.Record
	Header     *decode.PackageHeader
}

// ParsePackage decodes a package stream: a count of property blocks,
// each followed by its own count of primitive structures, closed by the
// package header record.
func ParsePackage(d *decode.Decoder) (*Package, error) {
	const op = "parsePackage"

	cur := d.Cursor()
	pkg := &Package{}

	propCount, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < propCount; i++ {
		rec, err := d.ReadStructure()
		if err != nil {
			return nil, err
		}
		pb, ok := rec.(*decode.PropertyBlock)
		if !ok {
			return nil, fault.New(fault.ErrFormatAssumptionViolation, op, cur.Offset(),
				"expected a property block, got %s", rec.ObjectType())
		}
		pkg.Properties = append(pkg.Properties, pb)

		primCount, err := cur.ReadU16(op)
		if err != nil {
			return nil, err
		}
		for j := uint16(0); j < primCount; j++ {
			prim, err := d.ReadStructure()
			if err != nil {
				return nil, err
			}
			pkg.Primitives = append(pkg.Primitives, prim)
		}
	}

	rec, err := d.ReadStructure()
	if err != nil {
		return nil, err
	}
	hdr, ok := rec.(*decode.PackageHeader)
	if !ok {
		return nil, fault.New(fault.ErrFormatAssumptionViolation, op, cur.Offset(),
			"expected the package header, got %s", rec.ObjectType())
	}
	pkg.Header = hdr

	if err := requireEOF(op, cur); err != nil {
		return nil, err
	}
	return pkg, nil
}
