// Package binary provides the forward-only byte cursor and record primitives
// used by the crate and database parsers.
package binary

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/grafana/regexp"

	"github.com/simonhull/cratekit/internal/types"
)

const (
	// DefaultChunkSize is how much the cursor pulls from its source at a time.
	DefaultChunkSize = 1024

	// contextSize bounds both halves of Context().
	contextSize = 16

	// maxFillStep bounds a single source read so a corrupt length cannot
	// allocate more than the source actually holds.
	maxFillStep = 1 << 20
)

// Cursor is a buffered, forward-only reader over a byte source.
//
// buf always holds exactly the unconsumed bytes starting at pos.
type Cursor struct {
	r         io.Reader
	err       error // sticky non-EOF source error
	path      string
	buf       []byte
	prev      []byte // last consumed bytes, at most contextSize, diagnostics only
	pos       int64
	chunkSize int
	drained   bool
}

// NewCursor creates a Cursor at offset 0. path is used in error messages.
func NewCursor(r io.Reader, path string) *Cursor {
	return NewCursorAt(r, path, 0)
}

// NewCursorAt creates a Cursor whose first byte sits at offset in the
// enclosing file, so nested record streams report absolute offsets.
func NewCursorAt(r io.Reader, path string, offset int64) *Cursor {
	return &Cursor{
		r:         r,
		path:      path,
		prev:      make([]byte, 0, contextSize),
		pos:       offset,
		chunkSize: DefaultChunkSize,
	}
}

// SetChunkSize changes how many bytes are requested per source read.
// Values below 1 are ignored.
func (c *Cursor) SetChunkSize(n int) {
	if n > 0 {
		c.chunkSize = n
	}
}

// Path returns the file path associated with this cursor.
func (c *Cursor) Path() string {
	return c.path
}

// Offset returns the absolute position of the next unconsumed byte.
func (c *Cursor) Offset() int64 {
	return c.pos
}

// fill pulls from the source until at least n bytes are buffered or the
// source is drained.
func (c *Cursor) fill(n int) error {
	if c.err != nil {
		return c.err
	}
	for len(c.buf) < n && !c.drained {
		need := min(n-len(c.buf), maxFillStep)
		chunk := make([]byte, max(need, c.chunkSize))
		got, err := io.ReadAtLeast(c.r, chunk, need)
		c.buf = append(c.buf, chunk[:got]...)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			c.drained = true
		default:
			c.err = fmt.Errorf("%s: read at offset %d: %w", c.path, c.pos+int64(len(c.buf)), err)
			return c.err
		}
	}
	return nil
}

// advance consumes n buffered bytes.
func (c *Cursor) advance(n int) []byte {
	out := c.buf[:n:n]
	tail := out[max(0, n-contextSize):]
	if drop := len(c.prev) + len(tail) - contextSize; drop > 0 {
		c.prev = append(c.prev[:0], c.prev[drop:]...)
	}
	c.prev = append(c.prev, tail...)
	c.buf = c.buf[n:]
	c.pos += int64(n)
	return out
}

// AtEnd reports whether the source is drained and nothing is buffered.
func (c *Cursor) AtEnd() bool {
	if len(c.buf) == 0 && !c.drained {
		// A read error leaves drained unset; report not-at-end so the next
		// read surfaces it.
		_ = c.fill(1)
	}
	return c.drained && len(c.buf) == 0
}

// ConsumeLiteral consumes lit if it appears at the current position.
//
// On mismatch it returns nil, or a *types.FormatMismatchError when strict.
func (c *Cursor) ConsumeLiteral(lit []byte, strict bool, what string) ([]byte, error) {
	if err := c.fill(len(lit)); err != nil {
		return nil, err
	}
	if bytes.HasPrefix(c.buf, lit) {
		return c.advance(len(lit)), nil
	}
	if strict {
		return nil, c.mismatch(what, hex.EncodeToString(lit))
	}
	return nil, nil
}

// ConsumePattern consumes the match of re starting at the current position.
//
// At least maxLen bytes (the chunk size when maxLen is 0) are buffered
// before matching, which bounds the longest possible match.
func (c *Cursor) ConsumePattern(re *regexp.Regexp, maxLen int, strict bool, what string) ([]byte, error) {
	if maxLen <= 0 {
		maxLen = c.chunkSize
	}
	if err := c.fill(maxLen); err != nil {
		return nil, err
	}
	window := c.buf
	if len(window) > maxLen {
		window = window[:maxLen]
	}
	if loc := re.FindIndex(window); loc != nil && loc[0] == 0 {
		return c.advance(loc[1]), nil
	}
	if strict {
		return nil, c.mismatch(what, re.String())
	}
	return nil, nil
}

// ConsumeExact consumes n bytes.
//
// If fewer remain, strict reads fail with *types.EndOfInputError and leave
// the position unchanged; non-strict reads return what is left.
func (c *Cursor) ConsumeExact(n int, strict bool, what string) ([]byte, error) {
	got, err := c.Peek(n, strict, what)
	if err != nil {
		return nil, err
	}
	return c.advance(len(got)), nil
}

// Peek returns the next n bytes without consuming them. Short reads follow
// the same rules as ConsumeExact.
func (c *Cursor) Peek(n int, strict bool, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative read length %d for %s", c.path, n, what)
	}
	if err := c.fill(n); err != nil {
		return nil, err
	}
	if len(c.buf) < n {
		if strict {
			return nil, &types.EndOfInputError{
				Path:    c.path,
				What:    what,
				Offset:  c.pos,
				Need:    n,
				Have:    len(c.buf),
				Context: c.Context(),
			}
		}
		return c.buf[:len(c.buf):len(c.buf)], nil
	}
	return c.buf[:n:n], nil
}

// Uint32 strictly consumes a 4-byte big-endian length.
func (c *Cursor) Uint32(what string) (uint32, error) {
	b, err := c.ConsumeExact(4, true, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Context renders the last consumed bytes and the upcoming bytes in hex,
// separated by "^". It is for error messages only.
func (c *Cursor) Context() string {
	next := c.buf
	if len(next) > contextSize {
		next = next[:contextSize]
	}
	return spacedHex(c.prev) + " ^ " + spacedHex(next)
}

// mismatch builds a FormatMismatchError at the current position.
func (c *Cursor) mismatch(what, expected string) error {
	return &types.FormatMismatchError{
		Path:     c.path,
		What:     what,
		Expected: expected,
		Offset:   c.pos,
		Context:  c.Context(),
	}
}

func spacedHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = hex.AppendEncode(out, []byte{v})
	}
	return string(out)
}
