package types

// DatabaseName is the display name of every database file.
const DatabaseName = "Serato Scratch LIVE Database"

// Database is a decoded track database.
type Database struct {
	// Version is the header version string, e.g. "@2.0".
	Version string

	// Tracks in file order.
	Tracks []Track

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning
}

// String returns the database display name.
func (d *Database) String() string {
	return DatabaseName
}
