package cratekit

import (
	"errors"
	"fmt"
	"io"

	"github.com/grafana/regexp"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown  = types.FormatUnknown
	FormatCrate    = types.FormatCrate
	FormatDatabase = types.FormatDatabase
)

var (
	versionLiteral = []byte("vrsn\x00\x00")

	// markerRun matches the UTF-16BE encoding of a printable ASCII run.
	markerRun = regexp.MustCompile(`\A(?:\x00[\x20-\x7e])+`)
)

const (
	versionSize  = 8
	maxMarkerLen = 2 * len(types.DatabaseMarker)
)

// DetectFormat identifies a crate or database from the boilerplate marker
// that follows the version field. The file name is not consulted.
//
// Returns *UnsupportedFormatError when neither marker is present.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	c := binary.NewCursor(io.NewSectionReader(r, 0, size), path)

	if _, err := c.ConsumeLiteral(versionLiteral, true, "version tag"); err != nil {
		return FormatUnknown, unsupported(path, "missing version header", err)
	}
	if _, err := c.ConsumeExact(versionSize, true, "version"); err != nil {
		return FormatUnknown, unsupported(path, "truncated version header", err)
	}
	run, err := c.ConsumePattern(markerRun, maxMarkerLen, true, "marker")
	if err != nil {
		return FormatUnknown, unsupported(path, "no marker after version", err)
	}
	marker, err := binary.DecodeText(run)
	if err != nil {
		return FormatUnknown, fmt.Errorf("decode marker: %w", err)
	}

	switch marker {
	case types.CrateMarker:
		return FormatCrate, nil
	case types.DatabaseMarker:
		return FormatDatabase, nil
	default:
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unrecognized marker %q", marker),
		}
	}
}

// unsupported converts header mismatches into *UnsupportedFormatError and
// passes source errors through.
func unsupported(path, reason string, err error) error {
	if errors.Is(err, ErrFormatMismatch) || errors.Is(err, ErrEndOfInput) {
		return &UnsupportedFormatError{Path: path, Reason: reason}
	}
	return err
}
