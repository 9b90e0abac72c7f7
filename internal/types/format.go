package types

import "slices"

// Format represents the detected document kind.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file.
	FormatUnknown Format = iota
	// FormatCrate represents a .crate file.
	FormatCrate
	// FormatDatabase represents the "database V2" file.
	FormatDatabase
)

// Boilerplate markers that follow the version field, before UTF-16BE encoding.
const (
	CrateMarker    = "/Serato ScratchLive Crate"
	DatabaseMarker = "/Serato Scratch LIVE Database"
)

// RecognizedVersions are the header versions the decoder has been checked
// against. Other versions parse, with a warning.
var RecognizedVersions = []string{"81.0", "@2.0"}

// IsRecognizedVersion reports whether v is in RecognizedVersions.
func IsRecognizedVersion(v string) bool {
	return slices.Contains(RecognizedVersions, v)
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCrate:
		return "Crate"
	case FormatDatabase:
		return "Database"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatCrate:
		return []string{".crate"}
	case FormatDatabase:
		// The database file has no extension ("database V2").
		return nil
	default:
		return nil
	}
}

// Marker returns the boilerplate marker for the format.
func (f Format) Marker() string {
	switch f {
	case FormatCrate:
		return CrateMarker
	case FormatDatabase:
		return DatabaseMarker
	default:
		return ""
	}
}
