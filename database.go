package cratekit

import (
	"fmt"
	"io"
	"os"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/database"
)

// DatabaseFile is the name of the track database inside a library root.
const DatabaseFile = "database V2"

// OpenDatabase opens and decodes a "database V2" file.
//
// Every otrk record becomes a Track whose fields are decoded through the
// field handlers configured with WithFieldHandler. Other top-level records
// are skipped with a warning.
//
// Example:
//
//	db, err := cratekit.OpenDatabase("_Serato_/database V2")
//	if err != nil {
//		return err
//	}
//	for _, t := range db.Tracks {
//		fmt.Println(t.String())
//	}
func OpenDatabase(path string, opts ...Option) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return readDatabase(f, path, newOptions(opts))
}

// ReadDatabase decodes a database from r.
func ReadDatabase(r io.Reader, opts ...Option) (*Database, error) {
	return readDatabase(r, DatabaseFile, newOptions(opts))
}

func readDatabase(r io.Reader, path string, o *openOptions) (*Database, error) {
	c := binary.NewCursor(r, path)
	c.SetChunkSize(o.chunkSize)

	db, err := database.Parse(c, o.registry(), o.parseConfig())
	if err != nil {
		return nil, fmt.Errorf("parse database: %w", err)
	}

	warnings, err := o.applyWarningPolicy(db.Warnings)
	if err != nil {
		return nil, err
	}
	db.Warnings = warnings
	return db, nil
}
