package cratekit_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/cratekit"
	"github.com/simonhull/cratekit/internal/testutil"
)

func TestErrors_MatchThroughPublicAPI(t *testing.T) {
	full := testutil.NewCrate("81.0").Track("Music/a.mp3").Bytes()

	tests := []struct {
		name   string
		data   []byte
		target error
	}{
		{"truncated", full[:len(full)-2], cratekit.ErrEndOfInput},
		{"bad marker", testutil.NewDatabase("@2.0").Bytes(), cratekit.ErrFormatMismatch},
		{"length mismatch", testutil.NewCrate("81.0").TrackWithLength("a.mp3", 3).Bytes(), cratekit.ErrFormatAssertion},
		{"unknown section", testutil.NewCrate("81.0").Record("ovzz", nil).Bytes(), cratekit.ErrUnknownSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cratekit.ReadCrate(bytes.NewReader(tt.data), "x")
			if c != nil {
				t.Errorf("ReadCrate returned a crate alongside %v", err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("ReadCrate error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestErrors_Offsets(t *testing.T) {
	b := testutil.NewCrate("81.0").Track("a.mp3")
	at := b.Len()
	data := b.TrackWithLength("b.mp3", 3).Bytes()

	_, err := cratekit.ReadCrate(bytes.NewReader(data), "x")

	var assertion *cratekit.FormatAssertionError
	if !errors.As(err, &assertion) {
		t.Fatalf("error = %v, want *FormatAssertionError", err)
	}
	if assertion.Offset != int64(at) {
		t.Errorf("Offset = %d, want %d", assertion.Offset, at)
	}
	if assertion.Context == "" {
		t.Error("Context is empty")
	}
}
