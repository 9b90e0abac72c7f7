package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/cratekit"
)

func writeText(w io.Writer, doc any) error {
	switch d := doc.(type) {
	case *cratekit.Crate:
		writeCrate(w, d)
	case *cratekit.Database:
		writeDatabase(w, d)
	case *cratekit.Library:
		writeLibrary(w, d)
	default:
		return fmt.Errorf("unexpected document %T", doc)
	}
	return nil
}

func writeCrate(w io.Writer, c *cratekit.Crate) {
	fmt.Fprintf(w, "Crate: %s\n", c)
	fmt.Fprintf(w, "Version: %s\n", c.Version)
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(c.Columns, ", "))
	if c.Sort != nil {
		fmt.Fprintf(w, "Sort: %s (%d)\n", c.Sort.Column, c.Sort.Reverse)
	}
	fmt.Fprintf(w, "Tracks: %d\n", len(c.Tracks))
	for _, path := range c.Tracks {
		fmt.Fprintf(w, "  %s\n", path)
	}
	writeWarnings(w, c.Warnings)
}

func writeDatabase(w io.Writer, db *cratekit.Database) {
	fmt.Fprintf(w, "%s %s\n", db, db.Version)
	fmt.Fprintf(w, "Tracks: %d\n", len(db.Tracks))
	for i := range db.Tracks {
		t := &db.Tracks[i]
		fmt.Fprintf(w, "  %s\n", t)
		if p := t.Path(); p != "" {
			fmt.Fprintf(w, "    %s\n", p)
		}
	}
	writeWarnings(w, db.Warnings)
}

func writeLibrary(w io.Writer, lib *cratekit.Library) {
	fmt.Fprintf(w, "Library: %s\n", lib.Root)
	if lib.Database != nil {
		fmt.Fprintf(w, "Database: %d tracks\n", len(lib.Database.Tracks))
	}
	fmt.Fprintf(w, "Crates: %d\n", len(lib.Crates))
	writeTree(w, lib.Tree(), 1)
}

// writeTree prints crate nodes depth-first.
func writeTree(w io.Writer, nodes []*cratekit.CrateNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		name := n.Name
		if name == "" {
			name = "(unnamed)"
		}
		if n.Crate == nil {
			fmt.Fprintf(w, "%s%s (no crate file)\n", indent, name)
		} else {
			fmt.Fprintf(w, "%s%s (%d)\n", indent, name, len(n.Crate.Tracks))
		}
		writeTree(w, n.Children, depth+1)
	}
}

func writeWarnings(w io.Writer, warnings []cratekit.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "Warnings: %d\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s\n", warning)
	}
}
