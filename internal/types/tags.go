package types

// Tag is a 4-byte section or field identifier, stored as a 4-character string.
type Tag string

// Header tags.
const (
	// TagVersion opens every crate and database file.
	TagVersion Tag = "vrsn"
)

// Crate section tags and their sub-tags.
const (
	TagColumn      Tag = "ovct" // Column descriptor (repeatable)
	TagSort        Tag = "osrt" // Sort descriptor
	TagTrack       Tag = "otrk" // Track container; also a database record
	TagTrackPath   Tag = "ptrk" // Track path inside a crate track container
	TagColumnName  Tag = "tvcn" // Column name inside ovct/osrt
	TagColumnWidth Tag = "tvcw" // Column width inside ovct
	TagSortReverse Tag = "brev" // Reverse flag inside osrt
)

// Database field tags found inside an otrk record.
const (
	TagFileType    Tag = "ttyp"
	TagFilePath    Tag = "pfil"
	TagTitle       Tag = "tsng"
	TagArtist      Tag = "tart"
	TagAlbum       Tag = "talb"
	TagGenre       Tag = "tgen"
	TagComment     Tag = "tcom"
	TagGrouping    Tag = "tgrp"
	TagLabel       Tag = "tlbl"
	TagRemixer     Tag = "trmx"
	TagKey         Tag = "tkey"
	TagLength      Tag = "tlen"
	TagSize        Tag = "tsiz"
	TagBitrate     Tag = "tbit"
	TagSampleRate  Tag = "tsmp"
	TagBPM         Tag = "tbpm"
	TagYear        Tag = "ttyr"
	TagDateAdded   Tag = "tadd"
	TagCorruptNote Tag = "tcor"
)

// FieldTags lists every database field tag with a known text encoding,
// in the order they usually appear inside a track record.
var FieldTags = []Tag{
	TagFileType,
	TagFilePath,
	TagTitle,
	TagArtist,
	TagAlbum,
	TagGenre,
	TagComment,
	TagGrouping,
	TagLabel,
	TagRemixer,
	TagKey,
	TagLength,
	TagSize,
	TagBitrate,
	TagSampleRate,
	TagBPM,
	TagYear,
	TagDateAdded,
	TagCorruptNote,
}

// String returns the tag as text.
func (t Tag) String() string {
	return string(t)
}

// Valid reports whether the tag is exactly four bytes long.
func (t Tag) Valid() bool {
	return len(t) == 4
}

// Bytes returns the raw tag bytes.
func (t Tag) Bytes() []byte {
	return []byte(t)
}
