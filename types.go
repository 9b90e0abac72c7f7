package cratekit

import (
	"github.com/simonhull/cratekit/internal/types"
)

// Document types re-exported from internal/types.
type (
	Crate     = types.Crate
	Sort      = types.Sort
	Database  = types.Database
	Track     = types.Track
	Value     = types.Value
	ValueKind = types.ValueKind
	Tag       = types.Tag
)

// Value kinds.
const (
	ValueText  = types.ValueText
	ValueInt   = types.ValueInt
	ValueBytes = types.ValueBytes
)

// HierarchyDelimiter separates parent and child crate names.
const HierarchyDelimiter = types.HierarchyDelimiter

// DefaultMaxRecordSize is the length limit used unless WithMaxRecordSize
// is given.
const DefaultMaxRecordSize = types.DefaultMaxRecordSize

// Crate section tags.
const (
	TagVersion     = types.TagVersion
	TagColumn      = types.TagColumn
	TagSort        = types.TagSort
	TagTrack       = types.TagTrack
	TagTrackPath   = types.TagTrackPath
	TagColumnName  = types.TagColumnName
	TagColumnWidth = types.TagColumnWidth
	TagSortReverse = types.TagSortReverse
)

// Database field tags.
const (
	TagFileType    = types.TagFileType
	TagFilePath    = types.TagFilePath
	TagTitle       = types.TagTitle
	TagArtist      = types.TagArtist
	TagAlbum       = types.TagAlbum
	TagGenre       = types.TagGenre
	TagComment     = types.TagComment
	TagGrouping    = types.TagGrouping
	TagLabel       = types.TagLabel
	TagRemixer     = types.TagRemixer
	TagKey         = types.TagKey
	TagLength      = types.TagLength
	TagSize        = types.TagSize
	TagBitrate     = types.TagBitrate
	TagSampleRate  = types.TagSampleRate
	TagBPM         = types.TagBPM
	TagYear        = types.TagYear
	TagDateAdded   = types.TagDateAdded
	TagCorruptNote = types.TagCorruptNote
)

// TraceEvent is an alias to types.TraceEvent.
type TraceEvent = types.TraceEvent

// TraceKind is an alias to types.TraceKind.
type TraceKind = types.TraceKind

// Trace checkpoints.
const (
	TraceTag    = types.TraceTag
	TraceRecord = types.TraceRecord
)
