// Package testutil builds synthetic crate and database images for tests.
package testutil

import (
	"bytes"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/types"
)

// Builder appends format elements to an in-memory image.
// Lengths are computed from the content unless written explicitly.
type Builder struct {
	buf bytes.Buffer
}

// NewCrate starts an image with a crate header.
func NewCrate(version string) *Builder {
	return newHeader(version, types.CrateMarker)
}

// NewDatabase starts an image with a database header.
func NewDatabase(version string) *Builder {
	return newHeader(version, types.DatabaseMarker)
}

func newHeader(version, marker string) *Builder {
	b := &Builder{}
	b.Raw([]byte("vrsn\x00\x00"))
	b.Text(version)
	b.Text(marker)
	return b
}

// Bytes returns the image.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Tag appends a 4-byte tag.
func (b *Builder) Tag(t types.Tag) *Builder {
	b.buf.WriteString(string(t))
	return b
}

// Uint32 appends a big-endian length.
func (b *Builder) Uint32(v uint32) *Builder {
	b.buf.Write(binary.AppendUint32(nil, v))
	return b
}

// Text appends s as UTF-16BE.
func (b *Builder) Text(s string) *Builder {
	b.buf.Write(UTF16(s))
	return b
}

// Column appends an ovct section.
func (b *Builder) Column(name, width string) *Builder {
	n, w := UTF16(name), UTF16(width)
	b.Tag(types.TagColumn).Uint32(uint32(8 + len(n) + 8 + len(w)))
	b.Tag(types.TagColumnName).Uint32(uint32(len(n))).Raw(n)
	b.Tag(types.TagColumnWidth).Uint32(uint32(len(w))).Raw(w)
	return b
}

// Sort appends an osrt section with a consistent length.
func (b *Builder) Sort(column string, reverse uint64) *Builder {
	n := UTF16(column)
	return b.SortWithLength(column, reverse, uint32(len(n)+17))
}

// SortWithLength appends an osrt section with an explicit outer length.
func (b *Builder) SortWithLength(column string, reverse uint64, outer uint32) *Builder {
	n := UTF16(column)
	b.Tag(types.TagSort).Uint32(outer)
	b.Tag(types.TagColumnName).Uint32(uint32(len(n))).Raw(n)
	b.Tag(types.TagSortReverse)
	var rev [8]byte
	for i := range rev {
		rev[7-i] = byte(reverse >> (8 * i))
	}
	b.Raw(rev[3:])
	return b
}

// Track appends an otrk section holding path.
func (b *Builder) Track(path string) *Builder {
	p := UTF16(path)
	return b.TrackWithLength(path, uint32(len(p)+8))
}

// TrackWithLength appends an otrk section with an explicit outer length.
func (b *Builder) TrackWithLength(path string, outer uint32) *Builder {
	p := UTF16(path)
	b.Tag(types.TagTrack).Uint32(outer)
	b.Tag(types.TagTrackPath).Uint32(uint32(len(p))).Raw(p)
	return b
}

// Record appends a tag-length-value record.
func (b *Builder) Record(tag types.Tag, payload []byte) *Builder {
	return b.Tag(tag).Uint32(uint32(len(payload))).Raw(payload)
}

// Field is one database track field.
type Field struct {
	Tag     types.Tag
	Payload []byte
}

// TextField returns a field holding s as UTF-16BE.
func TextField(tag types.Tag, s string) Field {
	return Field{Tag: tag, Payload: UTF16(s)}
}

// DatabaseTrack appends an otrk record containing fields.
func (b *Builder) DatabaseTrack(fields ...Field) *Builder {
	var inner Builder
	for _, f := range fields {
		inner.Record(f.Tag, f.Payload)
	}
	return b.Record(types.TagTrack, inner.Bytes())
}

// UTF16 encodes s as UTF-16BE.
func UTF16(s string) []byte {
	return binary.MustEncodeText(s)
}
