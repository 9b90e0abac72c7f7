package types

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrEndOfInput      = errors.New("end of input")
	ErrFormatMismatch  = errors.New("format mismatch")
	ErrFormatAssertion = errors.New("format assertion failed")
	ErrUnknownSection  = errors.New("unknown section")
)

// EndOfInputError is returned when fewer bytes remain than a read requires.
type EndOfInputError struct {
	Path    string
	What    string
	Context string
	Offset  int64
	Need    int
	Have    int
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("%s: %d bytes required for %s at offset %d but only %d remain [%s]",
		e.Path, e.Need, e.What, e.Offset, e.Have, e.Context)
}

// Is reports whether target is ErrEndOfInput.
func (e *EndOfInputError) Is(target error) bool {
	return target == ErrEndOfInput
}

// FormatMismatchError is returned when an expected literal or pattern is
// absent at the current position.
type FormatMismatchError struct {
	Path     string
	What     string
	Expected string
	Context  string
	Offset   int64
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s (%s) at offset %d [%s]",
		e.Path, e.What, e.Expected, e.Offset, e.Context)
}

// Is reports whether target is ErrFormatMismatch.
func (e *FormatMismatchError) Is(target error) bool {
	return target == ErrFormatMismatch
}

// FormatAssertionError is returned when length fields break a fixed
// relationship of the format.
type FormatAssertionError struct {
	Path    string
	Reason  string
	Context string
	Offset  int64
}

func (e *FormatAssertionError) Error() string {
	return fmt.Sprintf("%s: format assertion failed at offset %d: %s [%s]",
		e.Path, e.Offset, e.Reason, e.Context)
}

// Is reports whether target is ErrFormatAssertion.
func (e *FormatAssertionError) Is(target error) bool {
	return target == ErrFormatAssertion
}

// UnknownSectionError is returned for an unrecognized crate header section.
// It matches both ErrUnknownSection and ErrFormatMismatch.
type UnknownSectionError struct {
	Path    string
	Tag     Tag
	Context string
	Offset  int64
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("%s: unknown header section %q at offset %d [%s]",
		e.Path, string(e.Tag), e.Offset, e.Context)
}

// Is reports whether target is ErrUnknownSection or ErrFormatMismatch.
func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection || target == ErrFormatMismatch
}

// UnsupportedFormatError is returned when a file is neither a crate nor a
// database.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate data the decoder skipped or could not interpret without
// aborting. Examples include:
//   - An unrecognized header version
//   - A top-level database record that is not a track
//   - A track field with no registered handler
//   - A tempo that does not parse as a number
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "sections", "records", "fields"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
