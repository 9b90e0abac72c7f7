package cratekit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/crate"
)

// OpenCrate opens and decodes a .crate file.
//
// The crate name is the file name without its extension, so
// "Subcrates/Sets%%Warmup.crate" is named "Sets%%Warmup". The file is
// read sequentially and closed before OpenCrate returns.
//
// Example:
//
//	c, err := cratekit.OpenCrate("Subcrates/House.crate")
//	if err != nil {
//		return err
//	}
//	for _, path := range c.Tracks {
//		fmt.Println(path)
//	}
func OpenCrate(path string, opts ...Option) (*Crate, error) {
	return openCrate(path, newOptions(opts))
}

func openCrate(path string, o *openOptions) (*Crate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return readCrate(f, path, CrateName(path), o)
}

// ReadCrate decodes a crate from r. name becomes Crate.Name.
func ReadCrate(r io.Reader, name string, opts ...Option) (*Crate, error) {
	return readCrate(r, name+".crate", name, newOptions(opts))
}

// CrateName returns the crate name for a file path: the base name without
// its extension. Leading dots are part of the name, so ".crate" is named
// ".crate".
func CrateName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return strings.TrimSuffix(base, ext)
}

func readCrate(r io.Reader, path, name string, o *openOptions) (*Crate, error) {
	c := binary.NewCursor(r, path)
	c.SetChunkSize(o.chunkSize)

	doc, err := crate.Parse(c, name, o.parseConfig())
	if err != nil {
		return nil, fmt.Errorf("parse crate: %w", err)
	}

	warnings, err := o.applyWarningPolicy(doc.Warnings)
	if err != nil {
		return nil, err
	}
	doc.Warnings = warnings
	return doc, nil
}

// applyWarningPolicy enforces WithStrictParsing and WithIgnoreWarnings.
func (o *openOptions) applyWarningPolicy(warnings []Warning) ([]Warning, error) {
	if o.strictParsing && len(warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", warnings[0])
	}
	if o.ignoreWarnings {
		return nil, nil
	}
	return warnings, nil
}
