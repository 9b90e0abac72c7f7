// Package database decodes the Serato "database V2" track catalog.
package database

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/registry"
	"github.com/simonhull/cratekit/internal/types"
)

const versionSize = 8

var (
	versionLiteral = []byte("vrsn\x00\x00")
	databaseMarker = binary.MustEncodeText(types.DatabaseMarker)
)

type parser struct {
	c      *binary.Cursor
	reg    *registry.Registry
	db     *types.Database
	logger log.Logger
	trace  types.TraceFunc
	maxLen int
}

// Parse decodes a database from c, interpreting track fields through reg.
//
// Unknown top-level records and unknown fields are skipped with a warning;
// truncated records and header mismatches abort the parse.
func Parse(c *binary.Cursor, reg *registry.Registry, cfg types.ParseConfig) (*types.Database, error) {
	cfg = cfg.WithDefaults()
	if reg == nil {
		reg = registry.New()
	}
	p := &parser{
		c:      c,
		reg:    reg,
		db:     &types.Database{Tracks: []types.Track{}},
		logger: cfg.Logger,
		trace:  cfg.Trace,
		maxLen: cfg.MaxRecordSize,
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	if err := p.parseBody(); err != nil {
		return nil, err
	}
	return p.db, nil
}

func (p *parser) parseHeader() error {
	if _, err := p.c.ConsumeLiteral(versionLiteral, true, "version tag"); err != nil {
		return err
	}
	version, err := p.c.ConsumeText(versionSize, "version")
	if err != nil {
		return err
	}
	p.db.Version = version
	if !types.IsRecognizedVersion(p.db.Version) {
		level.Warn(p.logger).Log("msg", "unrecognized database version", "version", p.db.Version)
		p.warn("header", fmt.Sprintf("unrecognized version %q", p.db.Version), 0)
	}
	_, err = p.c.ConsumeLiteral(databaseMarker, true, "database marker")
	return err
}

func (p *parser) parseBody() error {
	for {
		rec, ok, err := binary.ReadRecord(p.c, p.maxLen)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		p.trace.Emit(types.TraceEvent{Kind: types.TraceTag, Tag: rec.Tag, Offset: rec.Offset})

		if rec.Tag != types.TagTrack {
			level.Warn(p.logger).Log("msg", "skipping unknown database section", "tag", rec.Tag, "offset", rec.Offset, "length", len(rec.Payload))
			p.warn("records", fmt.Sprintf("unknown section %q skipped", rec.Tag), rec.Offset)
			continue
		}

		track, err := p.parseTrack(rec)
		if err != nil {
			return err
		}
		p.db.Tracks = append(p.db.Tracks, track)
		p.trace.Emit(types.TraceEvent{
			Kind:   types.TraceRecord,
			Tag:    rec.Tag,
			Offset: rec.Offset,
			Index:  len(p.db.Tracks) - 1,
		})
	}
}

// parseTrack decodes the nested field stream of one otrk record.
func (p *parser) parseTrack(rec binary.Record) (types.Track, error) {
	track := types.Track{
		Fields: make(map[types.Tag]types.Value),
		Offset: rec.Offset,
	}
	fields := binary.NewCursorAt(bytes.NewReader(rec.Payload), p.c.Path(), rec.PayloadOffset)

	for {
		field, ok, err := binary.ReadRecord(fields, p.maxLen)
		if err != nil {
			return types.Track{}, err
		}
		if !ok {
			break
		}
		p.trace.Emit(types.TraceEvent{Kind: types.TraceTag, Tag: field.Tag, Offset: field.Offset})

		decode, known := p.reg.Lookup(field.Tag)
		if !known {
			p.unknownField(&track, field)
			continue
		}
		v, err := decode(field.Payload)
		if err != nil {
			level.Warn(p.logger).Log("msg", "field decode failed", "tag", field.Tag, "offset", field.Offset, "err", err)
			p.warn("fields", fmt.Sprintf("decode %q: %v", field.Tag, err), field.Offset)
			continue
		}
		track.Fields[field.Tag] = v
	}

	p.normalizeTempo(&track)
	return track, nil
}

func (p *parser) unknownField(track *types.Track, field binary.Record) {
	level.Debug(p.logger).Log("msg", "unknown track field", "tag", field.Tag, "offset", field.Offset, "length", len(field.Payload))
	p.warn("fields", fmt.Sprintf("unknown field %q", field.Tag), field.Offset)
	if p.reg.UnknownFields() != registry.RetainUnknown {
		return
	}
	if track.Unknown == nil {
		track.Unknown = make(map[types.Tag][]byte)
	}
	track.Unknown[field.Tag] = bytes.Clone(field.Payload)
}

// normalizeTempo replaces a text tbpm with its value rounded half to even.
func (p *parser) normalizeTempo(track *types.Track) {
	v, ok := track.Fields[types.TagBPM]
	if !ok || v.Kind != types.ValueText {
		return
	}
	bpm, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		level.Warn(p.logger).Log("msg", "tempo is not a number", "value", v.Text, "offset", track.Offset)
		p.warn("fields", fmt.Sprintf("tempo %q is not a number", v.Text), track.Offset)
		return
	}
	track.Fields[types.TagBPM] = types.IntValue(int64(math.RoundToEven(bpm)))
}

func (p *parser) warn(stage, msg string, offset int64) {
	p.db.Warnings = append(p.db.Warnings, types.Warning{
		Stage:   stage,
		Message: msg,
		Offset:  offset,
	})
}
