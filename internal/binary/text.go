package binary

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/cratekit/internal/types"
)

// utf16BE is the text encoding of every string in crate and database files.
// Byte order marks are not used by the format and are kept as content.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// InvalidTextError reports a malformed UTF-16BE string. Index is the byte
// position of the offending code unit within the decoded bytes.
type InvalidTextError struct {
	Index  int
	Reason string
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("invalid UTF-16BE at byte %d: %s", e.Index, e.Reason)
}

// DecodeText decodes UTF-16BE bytes. A trailing odd byte or an unpaired
// surrogate is an *InvalidTextError.
func DecodeText(b []byte) (string, error) {
	if err := validateText(b); err != nil {
		return "", err
	}
	out, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func validateText(b []byte) error {
	if len(b)%2 != 0 {
		return &InvalidTextError{Index: len(b) - 1, Reason: "odd byte count"}
	}
	for i := 0; i < len(b); i += 2 {
		u := binary.BigEndian.Uint16(b[i:])
		switch {
		case u >= 0xd800 && u < 0xdc00:
			if i+4 > len(b) {
				return &InvalidTextError{Index: i, Reason: "unpaired high surrogate"}
			}
			if next := binary.BigEndian.Uint16(b[i+2:]); next < 0xdc00 || next >= 0xe000 {
				return &InvalidTextError{Index: i, Reason: "unpaired high surrogate"}
			}
			i += 2
		case u >= 0xdc00 && u < 0xe000:
			return &InvalidTextError{Index: i, Reason: "unpaired low surrogate"}
		}
	}
	return nil
}

// ConsumeText consumes n bytes and decodes them as UTF-16BE. Malformed text
// is a *types.FormatAssertionError at the offending code unit.
func (c *Cursor) ConsumeText(n int, what string) (string, error) {
	start := c.pos
	raw, err := c.ConsumeExact(n, true, what)
	if err != nil {
		return "", err
	}
	s, err := DecodeText(raw)
	var invalid *InvalidTextError
	if errors.As(err, &invalid) {
		return "", &types.FormatAssertionError{
			Path:    c.path,
			Offset:  start + int64(invalid.Index),
			Reason:  fmt.Sprintf("%s: %s", what, invalid.Reason),
			Context: c.Context(),
		}
	}
	return s, err
}

// EncodeText encodes s as UTF-16BE.
func EncodeText(s string) ([]byte, error) {
	return utf16BE.NewEncoder().Bytes([]byte(s))
}

// MustEncodeText encodes a literal known to be valid UTF-8, such as the
// boilerplate markers. It panics on failure.
func MustEncodeText(s string) []byte {
	b, err := EncodeText(s)
	if err != nil {
		panic(err)
	}
	return b
}
