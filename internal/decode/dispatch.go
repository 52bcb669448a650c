package decode

import (
	"fmt"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

type readerFunc func(*Decoder, TypePrefix) (Record, error)

// structureReaders maps every understood tag to its body reader.
// Readers that keep an internal preamble (the geometry symbols with
// their own header choreography) are marked false in preambleBefore
// and read it themselves. The map is filled in init: reader bodies
// recurse back through Dispatch, so a package-level composite literal
// would be an initialization cycle.
var structureReaders map[format.Structure]readerFunc

// preambleBefore records which structure bodies the dispatcher must
// prefix with a preamble read. Tags marked false either have none or
// read one themselves at a position of their own choosing.
var preambleBefore = map[format.Structure]bool{
	format.StructSthInPages0:            true,
	format.StructProperties:             true,
	format.StructProperties2:            false,
	format.StructPartInst:               true,
	format.StructT0x10:                  true,
	format.StructWireScalar:             true,
	format.StructT0x1f:                  true,
	format.StructPinIdxMapping:          true,
	format.StructGlobalSymbol:           false,
	format.StructPortSymbol:             false,
	format.StructOffPageSymbol:          true,
	format.StructGeoDefinition:          false,
	format.StructSymbolDisplayProp:      true,
	format.StructSymbolVector:           false,
	format.StructAlias:                  true,
	format.StructGraphicCommentTextInst: true,
	format.StructGraphicBoxInst:         true,
	format.StructTitleBlockSymbol:       false,
	format.StructERCSymbol:              false,
	format.StructSymbolPinScalar:        true,
	format.StructSymbolPinBus:           false,
	format.StructPinShapeSymbol:         false,
}

func init() {
	structureReaders = map[format.Structure]readerFunc{
		format.StructSthInPages0:            readPageInstGroup,
		format.StructProperties:             readProperties,
		format.StructProperties2:            readProperties2,
		format.StructPartInst:               readPartInst,
		format.StructT0x10:                  readInstWrapper,
		format.StructWireScalar:             readWireScalar,
		format.StructT0x1f:                  readPackageHeader,
		format.StructPinIdxMapping:          readPinIdxMapping,
		format.StructGlobalSymbol:           symbolGeometryReader(format.StructGlobalSymbol, true),
		format.StructPortSymbol:             symbolGeometryReader(format.StructPortSymbol, true),
		format.StructOffPageSymbol:          symbolGeometryReader(format.StructOffPageSymbol, false),
		format.StructGeoDefinition:          symbolGeometryReader(format.StructGeoDefinition, true),
		format.StructSymbolDisplayProp:      readSymbolDisplayProp,
		format.StructSymbolVector:           readSymbolVectorStructure,
		format.StructAlias:                  readAlias,
		format.StructGraphicCommentTextInst: readGraphicCommentTextInst,
		format.StructGraphicBoxInst:         readGraphicBoxInst,
		format.StructTitleBlockSymbol:       symbolGeometryReader(format.StructTitleBlockSymbol, false),
		format.StructERCSymbol:              readERCSymbol,
		format.StructSymbolPinScalar:        readSymbolPinScalar,
		format.StructSymbolPinBus:           readSymbolPinBus,
		format.StructPinShapeSymbol:         symbolGeometryReader(format.StructPinShapeSymbol, true),
	}

	// Every tag the format package knows must be routable, and vice
	// versa. A drifting table is a programming error, not bad input.
	for _, s := range format.Structures() {
		if _, ok := structureReaders[s]; !ok {
			panic(fmt.Sprintf("decode: no reader registered for %s", s))
		}
		if _, ok := preambleBefore[s]; !ok {
			panic(fmt.Sprintf("decode: no preamble rule for %s", s))
		}
	}
	if len(structureReaders) != len(format.Structures()) {
		panic("decode: reader registered for unknown structure")
	}
}

// ReadStructure decodes one full-prefixed structure: full prefix,
// dispatch by tag, then settle any boundary the prefix declared by
// skipping to it. Returned records are fully owned by the caller.
func (d *Decoder) ReadStructure() (Record, error) {
	const op = "readStructure"

	depthBefore := d.future.Depth()
	tp, err := d.ReadFullPrefix()
	if err != nil {
		return nil, err
	}

	rec, err := d.Dispatch(tp)
	if err != nil {
		return nil, err
	}

	// A declared span must be consumed exactly; the tracker reports any
	// overrun the reader caused. A reader that landed exactly on the
	// stop interpreted the whole span itself.
	d.future.Checkpoint()
	if d.future.Depth() > depthBefore {
		if fd, ok := d.future.NextBoundary(); ok && fd.StopOffset == d.cur.Offset() {
			d.future.Drop()
		} else if err := d.future.ConsumeRestOfSpan(op); err != nil {
			return nil, err
		}
	}
	if err := d.future.Sanitize(tp.Tag.String()); err != nil {
		return nil, err
	}
	return rec, nil
}

// Dispatch routes an already-read type-prefix to its body reader,
// inserting the preamble read where the tag's layout calls for one.
func (d *Decoder) Dispatch(tp TypePrefix) (Record, error) {
	const op = "parseStructure"

	if err := d.enter(op); err != nil {
		return nil, err
	}
	defer d.leave()

	reader, ok := structureReaders[tp.Tag]
	if !ok {
		return nil, fault.New(fault.ErrUnimplementedStructure, op, d.cur.Offset(),
			"no reader for tag %s", tp.Tag)
	}

	d.log.Debug().
		Str("structure", tp.Tag.String()).
		Int64("offset", d.cur.Offset()).
		Msg("decoding structure")

	if preambleBefore[tp.Tag] {
		if _, err := d.ReadPreamble(true); err != nil {
			return nil, err
		}
	}
	return reader(d, tp)
}
