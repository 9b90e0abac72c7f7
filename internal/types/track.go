package types

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
)

// ValueKind identifies which member of a Value is populated.
type ValueKind int

const (
	// ValueText is a decoded UTF-16BE string.
	ValueText ValueKind = iota
	// ValueInt is an integer, currently only the normalized tempo.
	ValueInt
	// ValueBytes is an undecoded payload.
	ValueBytes
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueInt:
		return "int"
	case ValueBytes:
		return "bytes"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is one decoded database field.
type Value struct {
	Kind ValueKind
	Text string
	Int  int64
	Raw  []byte
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// IntValue returns an integer Value.
func IntValue(n int64) Value {
	return Value{Kind: ValueInt, Int: n}
}

// BytesValue returns a Value wrapping an opaque payload.
func BytesValue(b []byte) Value {
	return Value{Kind: ValueBytes, Raw: b}
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueBytes:
		return fmt.Sprintf("% x", v.Raw)
	default:
		return v.Text
	}
}

// Track is the decoded field set of one database track record.
//
// Tracks have no primary key; identity is their position in Database.Tracks.
type Track struct {
	// Fields holds every field decoded through the field registry.
	Fields map[Tag]Value

	// Unknown holds raw payloads of field tags the registry has no handler
	// for. Nil unless the registry retains unknown fields.
	Unknown map[Tag][]byte

	// Offset of the otrk record in the source.
	Offset int64
}

// Get returns the decoded value for tag.
func (t *Track) Get(tag Tag) (Value, bool) {
	v, ok := t.Fields[tag]
	return v, ok
}

// Text returns the display text of a field, or "" if it is absent.
func (t *Track) Text(tag Tag) string {
	v, ok := t.Fields[tag]
	if !ok {
		return ""
	}
	return v.String()
}

// Title returns the song title.
func (t *Track) Title() string { return t.Text(TagTitle) }

// Artist returns the track artist.
func (t *Track) Artist() string { return t.Text(TagArtist) }

// Album returns the album name.
func (t *Track) Album() string { return t.Text(TagAlbum) }

// Comment returns the comment field.
func (t *Track) Comment() string { return t.Text(TagComment) }

// Genre returns the genre.
func (t *Track) Genre() string { return t.Text(TagGenre) }

// Path returns the audio file path as stored in the database.
func (t *Track) Path() string { return t.Text(TagFilePath) }

// FileType returns the audio file type (mp3, flac, ...).
func (t *Track) FileType() string { return t.Text(TagFileType) }

// BPM returns the rounded tempo. ok is false when the track has no tempo
// or the stored text could not be parsed as a number.
func (t *Track) BPM() (bpm int64, ok bool) {
	v, found := t.Fields[TagBPM]
	if !found || v.Kind != ValueInt {
		return 0, false
	}
	return v.Int, true
}

// All returns an iterator over decoded fields in tag order.
func (t *Track) All() iter.Seq2[Tag, Value] {
	return func(yield func(Tag, Value) bool) {
		for _, tag := range slices.Sorted(maps.Keys(t.Fields)) {
			if !yield(tag, t.Fields[tag]) {
				return
			}
		}
	}
}

// String returns a one-line "artist - title - album {bpm, type}" summary.
func (t *Track) String() string {
	bpm := "?"
	if n, ok := t.BPM(); ok {
		bpm = strconv.FormatInt(n, 10)
	}
	fileType := t.FileType()
	if fileType == "" {
		fileType = "?"
	}
	return fmt.Sprintf("%s - %s - %s {%s, %s}", t.Artist(), t.Title(), t.Album(), bpm, fileType)
}
