package decode

import (
	"bytes"

	"github.com/danmuck/orcadec/internal/fault"
	"github.com/danmuck/orcadec/internal/format"
)

// PreambleMagic marks the beginning of a structure body.
var PreambleMagic = []byte{0xff, 0xe4, 0x5c, 0x39}

// Sentinels observed in the short prefix's 4-byte field. Interpreted as
// a lock flag; the semantics are unconfirmed, so a mismatch is logged
// and never fatal.
const (
	lockFlagUnlocked = 0x0b
	lockFlagLocked   = 0x1e
)

// PropPair is one resolved (name, value) entry of a short type-prefix.
// A zero wire index leaves the corresponding string absent.
type PropPair struct {
	NameIdx  uint32
	ValueIdx uint32
	Name     string
	Value    string
	HasName  bool
	HasValue bool
}

// TypePrefix is the decoded header preceding a structure body.
type TypePrefix struct {
	Tag      format.Structure
	LockFlag uint32
	// OffsetHint is present only in the full shape.
	OffsetHint uint32
	// Pairs holds the resolved name/value list; PairsAbsent records the
	// negative-count shape where the list is missing entirely.
	Pairs       []PropPair
	PairsAbsent bool
}

// ReadPreamble consumes the fixed magic marker and, when requested, the
// optional length introducing a skippable lock payload.
func (d *Decoder) ReadPreamble(withOptionalLen bool) (uint32, error) {
	const op = "readPreamble"

	start := d.cur.Offset()
	got, err := d.cur.ReadBytes(op, len(PreambleMagic))
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(got, PreambleMagic) {
		d.cur.Putback(len(PreambleMagic))
		return 0, fault.New(fault.ErrUnexpectedMagic, op, start,
			"expected % 02x, got % 02x", PreambleMagic, got)
	}

	if !withOptionalLen {
		return 0, nil
	}

	optionalLen, err := d.cur.ReadU32(op)
	if err != nil {
		return 0, err
	}
	if optionalLen > 0 {
		// Correlates to object locks.
		d.log.Debug().
			Uint32("len", optionalLen).
			Int64("offset", start).
			Msg("preamble carries lock payload")
		if err := d.cur.Discard(op, int(optionalLen)); err != nil {
			return 0, err
		}
	}
	return optionalLen, nil
}

// readStructTag reads one byte and requires it to be a known structure
// tag. Unknown tags fail loudly instead of being guessed.
func (d *Decoder) readStructTag(op string) (format.Structure, error) {
	start := d.cur.Offset()
	b, err := d.cur.ReadU8(op)
	if err != nil {
		return 0, err
	}
	tag, ok := format.ToStructure(b)
	if !ok {
		return 0, fault.New(fault.ErrUnimplementedStructure, op, start,
			"tag 0x%02x outside the understood set", b)
	}
	return tag, nil
}

// ReadShortPrefix decodes the short type-prefix shape: tag, lock flag,
// 4 metadata bytes, a tag copy (not cross-checked in this shape) and a
// signed pair count with its optional (name, value) index list.
func (d *Decoder) ReadShortPrefix() (TypePrefix, error) {
	const op = "readShortPrefix"

	tag, err := d.readStructTag(op)
	if err != nil {
		return TypePrefix{}, err
	}
	tp := TypePrefix{Tag: tag}

	flagOffset := d.cur.Offset()
	tp.LockFlag, err = d.cur.ReadU32(op)
	if err != nil {
		return TypePrefix{}, err
	}
	if tp.LockFlag != lockFlagUnlocked && tp.LockFlag != lockFlagLocked {
		// Unconfirmed field semantics; anomaly, not failure.
		d.log.Warn().
			Str("structure", tag.String()).
			Uint32("value", tp.LockFlag).
			Int64("offset", flagOffset).
			Msg("unexpected lock flag value")
	}

	if err := d.cur.Discard(op, 4); err != nil {
		return TypePrefix{}, err
	}

	// The tag appears a second time here but is not cross-checked in the
	// short shape.
	if _, err := d.cur.ReadU8(op); err != nil {
		return TypePrefix{}, err
	}

	count, err := d.cur.ReadI16(op)
	if err != nil {
		return TypePrefix{}, err
	}
	if count < 0 {
		d.log.Debug().
			Str("structure", tag.String()).
			Int16("count", count).
			Msg("pair list absent")
		tp.PairsAbsent = true
		return tp, nil
	}

	tp.Pairs = make([]PropPair, 0, count)
	for i := int16(0); i < count; i++ {
		idxOffset := d.cur.Offset()
		nameIdx, err := d.cur.ReadU32(op)
		if err != nil {
			return TypePrefix{}, err
		}
		valueIdx, err := d.cur.ReadU32(op)
		if err != nil {
			return TypePrefix{}, err
		}

		pair := PropPair{NameIdx: nameIdx, ValueIdx: valueIdx}
		pair.Name, pair.HasName, err = d.tbl.Resolve(op, idxOffset, nameIdx)
		if err != nil {
			return TypePrefix{}, err
		}
		pair.Value, pair.HasValue, err = d.tbl.Resolve(op, idxOffset+4, valueIdx)
		if err != nil {
			return TypePrefix{}, err
		}
		d.log.Trace().
			Str("name", pair.Name).
			Str("value", pair.Value).
			Msg("prefix pair")
		tp.Pairs = append(tp.Pairs, pair)
	}
	return tp, nil
}

// ReadLongPrefix decodes the long shape: tag, 2 metadata bytes, 6 bytes
// required all-zero, then a short prefix whose tag must repeat the
// outer one.
func (d *Decoder) ReadLongPrefix() (TypePrefix, error) {
	const op = "readLongPrefix"

	tagOffset := d.cur.Offset()
	tag, err := d.readStructTag(op)
	if err != nil {
		return TypePrefix{}, err
	}
	if err := d.cur.Discard(op, 2); err != nil {
		return TypePrefix{}, err
	}
	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}); err != nil {
		return TypePrefix{}, err
	}

	inner, err := d.ReadShortPrefix()
	if err != nil {
		return TypePrefix{}, err
	}
	if inner.Tag != tag {
		return TypePrefix{}, fault.New(fault.ErrTagMismatch, op, tagOffset,
			"outer tag %s, inner tag %s", tag, inner.Tag)
	}
	inner.Tag = tag
	return inner, nil
}

// ReadFullPrefix decodes the full shape: tag, a 4-byte offset hint
// cached for size-dependent branching, 4 bytes required all-zero, then
// a short prefix whose tag must repeat the outer one. A non-zero hint
// declares the structure's span on the boundary tracker.
func (d *Decoder) ReadFullPrefix() (TypePrefix, error) {
	const op = "readFullPrefix"

	tagOffset := d.cur.Offset()
	tag, err := d.readStructTag(op)
	if err != nil {
		return TypePrefix{}, err
	}

	hint, err := d.cur.ReadU32(op)
	if err != nil {
		return TypePrefix{}, err
	}
	d.offsetHint = hint
	d.log.Trace().
		Str("structure", tag.String()).
		Uint32("hint", hint).
		Msg("offset hint")

	if err := d.cur.Assume(op, []byte{0x00, 0x00, 0x00, 0x00}); err != nil {
		return TypePrefix{}, err
	}

	inner, err := d.ReadShortPrefix()
	if err != nil {
		return TypePrefix{}, err
	}
	if inner.Tag != tag {
		return TypePrefix{}, fault.New(fault.ErrTagMismatch, op, tagOffset,
			"outer tag %s, inner tag %s", tag, inner.Tag)
	}
	inner.Tag = tag
	inner.OffsetHint = hint

	if hint > 0 {
		// The hint spans the undecoded tail of this structure, measured
		// from the end of its prefix block.
		if err := d.future.Declare(op, d.cur.Offset(), d.cur.Offset()+int64(hint)); err != nil {
			return TypePrefix{}, err
		}
	}
	return inner, nil
}
