package binary

import (
	"fmt"

	"github.com/simonhull/cratekit/internal/types"
)

// Record is one tag-length-value record.
type Record struct {
	Tag           types.Tag
	Payload       []byte
	Offset        int64 // Position of the tag
	PayloadOffset int64 // Position of the first payload byte
}

// End returns the offset just past the payload.
func (r Record) End() int64 {
	return r.PayloadOffset + int64(len(r.Payload))
}

// ReadRecord reads a 4-byte tag, a 4-byte big-endian length and the payload.
//
// ok is false when fewer than 4 bytes remain for the tag, which ends a
// record stream cleanly. A truncated length or payload is a
// *types.EndOfInputError, and a length above maxPayload is a
// *types.FormatAssertionError.
func ReadRecord(c *Cursor, maxPayload int) (rec Record, ok bool, err error) {
	rec.Offset = c.Offset()

	tag, err := c.ConsumeExact(4, false, "record tag")
	if err != nil {
		return Record{}, false, err
	}
	if len(tag) < 4 {
		return Record{}, false, nil
	}
	rec.Tag = types.Tag(tag)

	length, err := c.Uint32(fmt.Sprintf("%s record length", rec.Tag))
	if err != nil {
		return Record{}, false, err
	}
	if maxPayload > 0 && uint64(length) > uint64(maxPayload) {
		return Record{}, false, &types.FormatAssertionError{
			Path:    c.Path(),
			Offset:  rec.Offset,
			Reason:  fmt.Sprintf("%s record length %d exceeds limit %d", rec.Tag, length, maxPayload),
			Context: c.Context(),
		}
	}

	rec.PayloadOffset = c.Offset()
	rec.Payload, err = c.ConsumeExact(int(length), true, fmt.Sprintf("%s record payload", rec.Tag))
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}
