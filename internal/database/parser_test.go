package database

import (
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/registry"
	"github.com/simonhull/cratekit/internal/testutil"
	"github.com/simonhull/cratekit/internal/types"
)

func parse(t *testing.T, data []byte, reg *registry.Registry) (*types.Database, error) {
	t.Helper()
	return Parse(binary.NewCursor(bytes.NewReader(data), "database V2"), reg, types.ParseConfig{})
}

func sampleDatabase() []byte {
	return testutil.NewDatabase("@2.0").
		DatabaseTrack(
			testutil.TextField(types.TagFileType, "mp3"),
			testutil.TextField(types.TagFilePath, "Music/Opener.mp3"),
			testutil.TextField(types.TagTitle, "Opener"),
			testutil.TextField(types.TagArtist, "Artist A"),
			testutil.TextField(types.TagBPM, "128.6"),
		).
		DatabaseTrack(
			testutil.TextField(types.TagFilePath, "Music/Closer.flac"),
			testutil.TextField(types.TagTitle, "Closer"),
			testutil.TextField(types.TagBPM, "95.0"),
		).
		Bytes()
}

func TestParse_Tracks(t *testing.T) {
	db, err := parse(t, sampleDatabase(), nil)
	require.NoError(t, err)

	assert.Equal(t, "@2.0", db.Version)
	assert.Empty(t, db.Warnings)
	require.Len(t, db.Tracks, 2)

	first := db.Tracks[0]
	assert.Equal(t, "Opener", first.Title())
	assert.Equal(t, "Artist A", first.Artist())
	assert.Equal(t, "Music/Opener.mp3", first.Path())
	assert.Equal(t, "mp3", first.FileType())
	bpm, ok := first.BPM()
	require.True(t, ok)
	assert.Equal(t, int64(129), bpm)
	assert.Equal(t, types.IntValue(129), first.Fields[types.TagBPM])

	second := db.Tracks[1]
	assert.Equal(t, "Closer", second.Title())
	assert.Equal(t, "", second.Artist())
	bpm, ok = second.BPM()
	require.True(t, ok)
	assert.Equal(t, int64(95), bpm)

	assert.Greater(t, second.Offset, first.Offset)
}

func TestParse_TempoRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"128.6", 129},
		{"128.4", 128},
		{"127.5", 128},
		{"128.5", 128},
		{" 120 ", 120},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			data := testutil.NewDatabase("@2.0").
				DatabaseTrack(testutil.TextField(types.TagBPM, tt.in)).
				Bytes()

			db, err := parse(t, data, nil)
			require.NoError(t, err)
			require.Len(t, db.Tracks, 1)

			got, ok := db.Tracks[0].BPM()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnparsableTempoStaysText(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(testutil.TextField(types.TagBPM, "fast")).
		Bytes()

	db, err := parse(t, data, nil)
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)

	_, ok := db.Tracks[0].BPM()
	assert.False(t, ok)
	assert.Equal(t, types.TextValue("fast"), db.Tracks[0].Fields[types.TagBPM])
	require.Len(t, db.Warnings, 1)
	assert.Equal(t, "fields", db.Warnings[0].Stage)
}

func TestParse_MalformedTextFieldWarns(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(
			testutil.TextField(types.TagFilePath, "Music/a.mp3"),
			testutil.Field{Tag: types.TagTitle, Payload: []byte{0x00, 0x61, 0xd8, 0x3d}},
		).
		Bytes()

	db, err := parse(t, data, nil)
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)

	track := db.Tracks[0]
	assert.Equal(t, "Music/a.mp3", track.Path())
	_, ok := track.Fields[types.TagTitle]
	assert.False(t, ok)

	require.Len(t, db.Warnings, 1)
	assert.Equal(t, "fields", db.Warnings[0].Stage)
	assert.Contains(t, db.Warnings[0].Message, "unpaired high surrogate")
}

func TestParse_UnknownFieldRetained(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(
			testutil.TextField(types.TagTitle, "Opener"),
			testutil.Field{Tag: "zzzz", Payload: []byte{0x01, 0x02}},
			testutil.TextField(types.TagArtist, "Artist A"),
		).
		Bytes()

	db, err := parse(t, data, nil)
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)

	track := db.Tracks[0]
	assert.Equal(t, "Opener", track.Title())
	assert.Equal(t, "Artist A", track.Artist())
	assert.Equal(t, map[types.Tag][]byte{"zzzz": {0x01, 0x02}}, track.Unknown)
	_, ok := track.Fields["zzzz"]
	assert.False(t, ok)

	require.Len(t, db.Warnings, 1)
	assert.Contains(t, db.Warnings[0].Message, "zzzz")
}

func TestParse_UnknownFieldDropped(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(
			testutil.TextField(types.TagTitle, "Opener"),
			testutil.Field{Tag: "zzzz", Payload: []byte{0x01}},
		).
		Bytes()

	db, err := parse(t, data, registry.New(registry.WithUnknownFields(registry.DropUnknown)))
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)

	assert.Nil(t, db.Tracks[0].Unknown)
	assert.Equal(t, "Opener", db.Tracks[0].Title())
	assert.Len(t, db.Warnings, 1)
}

func TestParse_CustomHandler(t *testing.T) {
	size := func(payload []byte) (types.Value, error) {
		return types.IntValue(int64(len(payload))), nil
	}
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(testutil.Field{Tag: "uadd", Payload: []byte{0, 0, 0, 7}}).
		Bytes()

	db, err := parse(t, data, registry.New(registry.WithHandler("uadd", size)))
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)
	assert.Equal(t, types.IntValue(4), db.Tracks[0].Fields["uadd"])
	assert.Nil(t, db.Tracks[0].Unknown)
}

func TestParse_UnknownSectionSkipped(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		DatabaseTrack(testutil.TextField(types.TagTitle, "One")).
		Record("oren", []byte("opaque")).
		DatabaseTrack(testutil.TextField(types.TagTitle, "Two")).
		Bytes()

	db, err := parse(t, data, nil)
	require.NoError(t, err)
	require.Len(t, db.Tracks, 2)
	assert.Equal(t, "One", db.Tracks[0].Title())
	assert.Equal(t, "Two", db.Tracks[1].Title())

	require.Len(t, db.Warnings, 1)
	assert.Equal(t, "records", db.Warnings[0].Stage)
}

func TestParse_Empty(t *testing.T) {
	db, err := parse(t, testutil.NewDatabase("@2.0").Bytes(), nil)
	require.NoError(t, err)
	assert.NotNil(t, db.Tracks)
	assert.Empty(t, db.Tracks)
}

func TestParse_EmptyTrack(t *testing.T) {
	db, err := parse(t, testutil.NewDatabase("@2.0").DatabaseTrack().Bytes(), nil)
	require.NoError(t, err)
	require.Len(t, db.Tracks, 1)
	assert.Empty(t, db.Tracks[0].Fields)
}

func TestParse_HeaderMismatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"crate marker", testutil.NewCrate("81.0").Bytes()},
		{"missing version tag", []byte("nope\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := parse(t, tt.data, nil)
			assert.Nil(t, db)
			assert.ErrorIs(t, err, types.ErrFormatMismatch)
		})
	}
}

func TestParse_TruncatedField(t *testing.T) {
	inner := new(testutil.Builder).
		Tag(types.TagTitle).Uint32(10).Raw([]byte{0x00, 'a'}).
		Bytes()
	b := testutil.NewDatabase("@2.0")
	header := b.Len()
	data := b.Record(types.TagTrack, inner).Bytes()

	db, err := parse(t, data, nil)
	assert.Nil(t, db)
	require.ErrorIs(t, err, types.ErrEndOfInput)

	var eoi *types.EndOfInputError
	require.ErrorAs(t, err, &eoi)
	// Offsets inside a track are absolute file positions.
	assert.Equal(t, int64(header+8+8), eoi.Offset)
	assert.Equal(t, 10, eoi.Need)
	assert.Equal(t, 2, eoi.Have)
}

func TestParse_TruncatedRecord(t *testing.T) {
	data := sampleDatabase()
	_, err := parse(t, data[:len(data)-3], nil)
	assert.ErrorIs(t, err, types.ErrEndOfInput)
}

func TestParse_RecordLengthLimit(t *testing.T) {
	data := testutil.NewDatabase("@2.0").
		Tag(types.TagTrack).Uint32(0xffffffff).
		Bytes()

	_, err := Parse(binary.NewCursor(bytes.NewReader(data), "database V2"), nil, types.ParseConfig{MaxRecordSize: 1024})
	assert.ErrorIs(t, err, types.ErrFormatAssertion)
}

func TestParse_OneByteSource(t *testing.T) {
	want, err := parse(t, sampleDatabase(), nil)
	require.NoError(t, err)

	c := binary.NewCursor(iotest.OneByteReader(bytes.NewReader(sampleDatabase())), "database V2")
	c.SetChunkSize(1)
	got, err := Parse(c, nil, types.ParseConfig{})
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("one-byte parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Trace(t *testing.T) {
	var events []types.TraceEvent
	cfg := types.ParseConfig{Trace: func(ev types.TraceEvent) { events = append(events, ev) }}

	traced, err := Parse(binary.NewCursor(bytes.NewReader(sampleDatabase()), "database V2"), nil, cfg)
	require.NoError(t, err)
	plain, err := parse(t, sampleDatabase(), nil)
	require.NoError(t, err)

	if diff := cmp.Diff(plain, traced); diff != "" {
		t.Errorf("trace changed the result (-plain +traced):\n%s", diff)
	}

	var records []types.TraceEvent
	tags := 0
	for _, ev := range events {
		switch ev.Kind {
		case types.TraceRecord:
			records = append(records, ev)
		case types.TraceTag:
			tags++
		}
	}
	// Two otrk records holding five and three fields.
	assert.Equal(t, 2+5+3, tags)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, 1, records[1].Index)
	assert.Equal(t, traced.Tracks[1].Offset, records[1].Offset)
}

func FuzzParse(f *testing.F) {
	f.Add(sampleDatabase())
	f.Add(testutil.NewDatabase("@2.0").Bytes())
	f.Add(testutil.NewDatabase("@2.0").Record("oren", []byte{1, 2, 3}).Bytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg := types.ParseConfig{MaxRecordSize: 1 << 16}
		db, err := Parse(binary.NewCursor(bytes.NewReader(data), "fuzz"), nil, cfg)
		if err != nil {
			if db != nil {
				t.Fatal("database returned alongside error")
			}
			return
		}
		for i, track := range db.Tracks {
			if track.Fields == nil {
				t.Fatalf("track %d has nil fields", i)
			}
		}
	})
}
