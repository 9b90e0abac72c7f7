package types

import "strings"

// HierarchyDelimiter separates parent and child names in a crate file name.
// "Sets%%Warmup.crate" is the crate Warmup nested under Sets.
const HierarchyDelimiter = "%%"

// DefaultColumns are present in every crate before any column descriptor
// is read.
var DefaultColumns = []string{"song", "artist", "album", "length"}

// Sort is the crate's sort column.
type Sort struct {
	Column string

	// Reverse is the raw 5-byte big-endian brev value. Its meaning is not
	// documented; crates sorted ascending usually carry 256.
	Reverse uint64
}

// Crate is a decoded crate file.
type Crate struct {
	// Name is the file name without extension, delimiter included.
	Name string

	// Version is the header version string, e.g. "81.0".
	Version string

	// Columns starts with DefaultColumns and grows with every column
	// descriptor, in file order. Duplicates are kept.
	Columns []string

	// Sort is nil when the crate has no sort descriptor.
	Sort *Sort

	// Tracks holds the track paths in file order.
	Tracks []string

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning
}

// NewCrate returns an empty crate with the default columns.
func NewCrate(name string) *Crate {
	return &Crate{
		Name:    name,
		Columns: append([]string(nil), DefaultColumns...),
		Tracks:  []string{},
	}
}

// Path splits the crate name into its hierarchy, root first.
func (c *Crate) Path() []string {
	if c.Name == "" {
		return nil
	}
	return strings.Split(c.Name, HierarchyDelimiter)
}

// IsSubcrate reports whether the crate is nested under another crate.
func (c *Crate) IsSubcrate() bool {
	return strings.Contains(c.Name, HierarchyDelimiter)
}

// Parent returns the full name of the parent crate, or "" for a root crate.
func (c *Crate) Parent() string {
	i := strings.LastIndex(c.Name, HierarchyDelimiter)
	if i < 0 {
		return ""
	}
	return c.Name[:i]
}

// String returns the crate name with the delimiter replaced by "/".
func (c *Crate) String() string {
	return strings.ReplaceAll(c.Name, HierarchyDelimiter, "/")
}
