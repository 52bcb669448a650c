package streams

import (
	"time"

	"github.com/danmuck/orcadec/internal/decode"
	"github.com/danmuck/orcadec/internal/format"
)

// DirItem is one entry of a directory stream: a named member stream
// plus its recorded format version.
type DirItem struct {
	Name              string
	ComponentType     format.ComponentType
	FileFormatVersion uint16
	Timezone          int16
}

// Directory is a directory stream: the last-modified timestamp and the
// member list.
type Directory struct {
	LastModified time.Time
	Items        []DirItem
}

// ParseDirectory decodes a directory stream. Directory streams list the
// members of one container section (packages, symbols, views, ...).
func ParseDirectory(d *decode.Decoder) (*Directory, error) {
	const op = "parseDirectory"

	cur := d.Cursor()
	modified, err := cur.ReadU32(op)
	if err != nil {
		return nil, err
	}
	dir := &Directory{LastModified: time.Unix(int64(modified), 0).UTC()}

	count, err := cur.ReadU16(op)
	if err != nil {
		return nil, err
	}
	dir.Items = make([]DirItem, 0, count)
	for i := uint16(0); i < count; i++ {
		var item DirItem
		if item.Name, err = cur.ReadString(op); err != nil {
			return nil, err
		}
		ct, err := cur.ReadU16(op)
		if err != nil {
			return nil, err
		}
		item.ComponentType = format.ComponentType(ct)

		// Varies with the format version; possibly a digest of the
		// member stream.
		if err := cur.Discard(op, 14); err != nil {
			return nil, err
		}
		if item.FileFormatVersion, err = cur.ReadU16(op); err != nil {
			return nil, err
		}
		if item.Timezone, err = cur.ReadI16(op); err != nil {
			return nil, err
		}
		if err := cur.Discard(op, 2); err != nil {
			return nil, err
		}
		dir.Items = append(dir.Items, item)
	}

	if err := requireEOF(op, cur); err != nil {
		return nil, err
	}
	return dir, nil
}
