package cratekit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-kit/log/level"
)

// SubcratesDir holds one .crate file per crate inside a library root.
const SubcratesDir = "Subcrates"

// Library is a decoded library root: the track database and every crate.
type Library struct {
	// Root is the directory the library was read from.
	Root string

	// Database is nil when the root has no database file.
	Database *Database

	// Crates in file name order.
	Crates []*Crate
}

// OpenLibrary reads root/"database V2" and every root/Subcrates/*.crate.
//
// Files are parsed one after another. A missing database or Subcrates
// directory is not an error; a file that fails to parse is.
//
// Example:
//
//	lib, err := cratekit.OpenLibrary(filepath.Join(home, "Music", "_Serato_"))
//	if err != nil {
//		return err
//	}
//	for _, c := range lib.Children("") {
//		fmt.Println(c)
//	}
func OpenLibrary(root string, opts ...Option) (*Library, error) {
	o := newOptions(opts)
	lib := &Library{Root: root}

	dbPath := filepath.Join(root, DatabaseFile)
	f, err := os.Open(dbPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		level.Debug(o.logger).Log("msg", "library has no database", "root", root)
	case err != nil:
		return nil, fmt.Errorf("open database: %w", err)
	default:
		lib.Database, err = readDatabase(f, dbPath, o)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dbPath, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, SubcratesDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", SubcratesDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".crate") {
			continue
		}
		path := filepath.Join(root, SubcratesDir, entry.Name())
		level.Debug(o.logger).Log("msg", "reading crate", "path", path)

		c, err := openCrate(path, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		lib.Crates = append(lib.Crates, c)
	}

	return lib, nil
}

// Crate returns the crate with the given full name ("Sets%%Warmup"), or nil.
func (l *Library) Crate(name string) *Crate {
	for _, c := range l.Crates {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns the crates directly nested under name. An empty name
// returns the root crates.
func (l *Library) Children(name string) []*Crate {
	var children []*Crate
	for _, c := range l.Crates {
		if c.Name != name && c.Parent() == name {
			children = append(children, c)
		}
	}
	return children
}

// CrateNode is one level of the crate hierarchy.
type CrateNode struct {
	// Name is the last segment of the crate name.
	Name string

	// Crate is nil for a level with no file of its own, such as "Sets"
	// when only "Sets%%Warmup.crate" exists.
	Crate *Crate

	Children []*CrateNode
}

// Tree arranges the crates by the segments of their names. Ancestors
// without a crate file become nodes with a nil Crate. Siblings are sorted
// by name.
func (l *Library) Tree() []*CrateNode {
	root := &CrateNode{}
	for _, c := range l.Crates {
		segments := c.Path()
		if len(segments) == 0 {
			segments = []string{""}
		}
		n := root
		for _, seg := range segments {
			n = n.child(seg)
		}
		n.Crate = c
	}
	root.sortChildren()
	return root.Children
}

func (n *CrateNode) child(name string) *CrateNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &CrateNode{Name: name}
	n.Children = append(n.Children, c)
	return c
}

func (n *CrateNode) sortChildren() {
	slices.SortFunc(n.Children, func(a, b *CrateNode) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, c := range n.Children {
		c.sortChildren()
	}
}
