package cratekit

import (
	"github.com/simonhull/cratekit/internal/types"
)

// EndOfInputError is an alias to types.EndOfInputError.
// Returned when the source ends inside a field.
type EndOfInputError = types.EndOfInputError

// FormatMismatchError is an alias to types.FormatMismatchError.
// Returned when an expected tag or marker is absent.
type FormatMismatchError = types.FormatMismatchError

// FormatAssertionError is an alias to types.FormatAssertionError.
// Returned when nested length fields disagree.
type FormatAssertionError = types.FormatAssertionError

// UnknownSectionError is an alias to types.UnknownSectionError.
type UnknownSectionError = types.UnknownSectionError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Sentinels for errors.Is.
var (
	ErrEndOfInput      = types.ErrEndOfInput
	ErrFormatMismatch  = types.ErrFormatMismatch
	ErrFormatAssertion = types.ErrFormatAssertion
	ErrUnknownSection  = types.ErrUnknownSection
)
