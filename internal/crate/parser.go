// Package crate decodes Serato .crate files.
package crate

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/types"
)

// Fixed relationships between nested length fields.
const (
	sortLengthOverhead  = 17 // osrt length - tvcn length
	trackLengthOverhead = 8  // otrk length - ptrk length
	sortReverseSize     = 5
	versionSize         = 8
)

var (
	versionLiteral = []byte("vrsn\x00\x00")
	crateMarker    = binary.MustEncodeText(types.CrateMarker)

	// sectionPrefixes are the first two bytes of every known header section.
	sectionPrefixes = []string{"os", "ot", "ov"}
)

// state is a position in the crate parsing state machine.
type state int

const (
	stateHeaderVersion state = iota
	stateHeaderSections
	stateTracks
	stateDone
)

type parser struct {
	c      *binary.Cursor
	crate  *types.Crate
	logger log.Logger
	trace  types.TraceFunc
	maxLen int
	state  state
}

// Parse decodes a crate from c. name is the crate's file stem.
//
// Header and section errors abort the parse and no crate is returned.
// A crate without tracks is valid.
func Parse(c *binary.Cursor, name string, cfg types.ParseConfig) (*types.Crate, error) {
	cfg = cfg.WithDefaults()
	p := &parser{
		c:      c,
		crate:  types.NewCrate(name),
		logger: log.With(cfg.Logger, "crate", name),
		trace:  cfg.Trace,
		maxLen: cfg.MaxRecordSize,
		state:  stateHeaderVersion,
	}

	for p.state != stateDone {
		var err error
		switch p.state {
		case stateHeaderVersion:
			err = p.parseHeaderVersion()
		case stateHeaderSections:
			err = p.parseHeaderSection()
		case stateTracks:
			err = p.parseTracks()
		}
		if err != nil {
			return nil, err
		}
	}

	return p.crate, nil
}

func (p *parser) parseHeaderVersion() error {
	if _, err := p.c.ConsumeLiteral(versionLiteral, true, "version tag"); err != nil {
		return err
	}
	version, err := p.c.ConsumeText(versionSize, "version")
	if err != nil {
		return err
	}
	p.crate.Version = version
	if !types.IsRecognizedVersion(p.crate.Version) {
		level.Warn(p.logger).Log("msg", "unrecognized crate version", "version", p.crate.Version)
		p.warn("header", fmt.Sprintf("unrecognized version %q", p.crate.Version), 0)
	}
	if _, err := p.c.ConsumeLiteral(crateMarker, true, "crate marker"); err != nil {
		return err
	}
	p.state = stateHeaderSections
	return nil
}

// parseHeaderSection reads one header section and the padding after it.
func (p *parser) parseHeaderSection() error {
	offset := p.c.Offset()
	raw, err := p.c.ConsumeExact(4, false, "section tag")
	if err != nil {
		return err
	}
	if len(raw) < 4 {
		// Header-only crate.
		p.state = stateDone
		return nil
	}
	tag := types.Tag(raw)
	p.trace.Emit(types.TraceEvent{Kind: types.TraceTag, Tag: tag, Offset: offset})

	switch tag {
	case types.TagTrack:
		// The tag opens the first track; parseTracks must not re-read it.
		p.state = stateTracks
		return nil
	case types.TagColumn:
		err = p.parseColumn()
	case types.TagSort:
		err = p.parseSort()
	default:
		return &types.UnknownSectionError{
			Path:    p.c.Path(),
			Tag:     tag,
			Offset:  offset,
			Context: p.c.Context(),
		}
	}
	if err != nil {
		return err
	}

	return p.skipPadding()
}

// parseColumn reads an ovct body: tvcn name, tvcw width.
func (p *parser) parseColumn() error {
	if _, err := p.c.Uint32("ovct length"); err != nil {
		return err
	}
	name, _, err := p.readColumnName()
	if err != nil {
		return err
	}
	p.crate.Columns = append(p.crate.Columns, name)

	if _, err := p.c.ConsumeLiteral(types.TagColumnWidth.Bytes(), true, "tvcw tag"); err != nil {
		return err
	}
	width, err := p.readLength("tvcw length")
	if err != nil {
		return err
	}
	_, err = p.c.ConsumeExact(width, true, "tvcw payload")
	return err
}

// parseSort reads an osrt body: tvcn name, brev flag. Nothing is committed
// to the crate unless the length check passes.
func (p *parser) parseSort() error {
	offset := p.c.Offset()
	outer, err := p.c.Uint32("osrt length")
	if err != nil {
		return err
	}
	name, nameLen, err := p.readColumnName()
	if err != nil {
		return err
	}
	if _, err := p.c.ConsumeLiteral(types.TagSortReverse.Bytes(), true, "brev tag"); err != nil {
		return err
	}
	rev, err := p.c.ConsumeExact(sortReverseSize, true, "brev value")
	if err != nil {
		return err
	}

	if diff := int64(outer) - int64(nameLen); diff != sortLengthOverhead {
		return &types.FormatAssertionError{
			Path:    p.c.Path(),
			Offset:  offset,
			Reason:  fmt.Sprintf("expected osrt - tvcn to be %d, found %d (osrt = %d, tvcn = %d)", sortLengthOverhead, diff, outer, nameLen),
			Context: p.c.Context(),
		}
	}

	if p.crate.Sort != nil {
		p.warn("sections", fmt.Sprintf("duplicate sort descriptor replaces sort on %q", p.crate.Sort.Column), offset)
	}
	p.crate.Columns = append(p.crate.Columns, name)
	p.crate.Sort = &types.Sort{Column: name, Reverse: binary.BigEndianUint(rev)}
	return nil
}

// readColumnName reads a tvcn sub-record and returns the name and its
// encoded length.
func (p *parser) readColumnName() (string, int, error) {
	if _, err := p.c.ConsumeLiteral(types.TagColumnName.Bytes(), true, "tvcn tag"); err != nil {
		return "", 0, err
	}
	n, err := p.readLength("tvcn length")
	if err != nil {
		return "", 0, err
	}
	name, err := p.c.ConsumeText(n, "column name")
	if err != nil {
		return "", 0, err
	}
	return name, n, nil
}

// skipPadding consumes undocumented 2-byte units until the next section
// prefix or the end of the stream.
func (p *parser) skipPadding() error {
	for !p.c.AtEnd() {
		next, err := p.c.Peek(2, false, "section prefix")
		if err != nil {
			return err
		}
		if isSectionPrefix(next) {
			return nil
		}
		if _, err := p.c.ConsumeExact(2, false, "section padding"); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseTracks() error {
	first := true
	for !p.c.AtEnd() {
		offset := p.c.Offset()
		if !first {
			lit, err := p.c.ConsumeLiteral(types.TagTrack.Bytes(), false, "otrk tag")
			if err != nil {
				return err
			}
			if lit == nil {
				break
			}
			p.trace.Emit(types.TraceEvent{Kind: types.TraceTag, Tag: types.TagTrack, Offset: offset})
		} else {
			// The first otrk tag was read as a header section.
			offset -= 4
		}
		first = false

		path, err := p.parseTrack(offset)
		if err != nil {
			return err
		}
		p.crate.Tracks = append(p.crate.Tracks, path)
		p.trace.Emit(types.TraceEvent{
			Kind:   types.TraceRecord,
			Tag:    types.TagTrack,
			Offset: offset,
			Index:  len(p.crate.Tracks) - 1,
		})
	}
	p.state = stateDone
	return nil
}

// parseTrack reads the body of one otrk section and returns its path.
func (p *parser) parseTrack(offset int64) (string, error) {
	outer, err := p.c.Uint32("otrk length")
	if err != nil {
		return "", err
	}
	if _, err := p.c.ConsumeLiteral(types.TagTrackPath.Bytes(), true, "ptrk tag"); err != nil {
		return "", err
	}
	pathLen, err := p.readLength("ptrk length")
	if err != nil {
		return "", err
	}
	if diff := int64(outer) - int64(pathLen); diff != trackLengthOverhead {
		return "", &types.FormatAssertionError{
			Path:    p.c.Path(),
			Offset:  offset,
			Reason:  fmt.Sprintf("expected otrk - ptrk to be %d, found %d (otrk = %d, ptrk = %d)", trackLengthOverhead, diff, outer, pathLen),
			Context: p.c.Context(),
		}
	}
	return p.c.ConsumeText(pathLen, "track path")
}

// readLength reads a u32 length and rejects values above the record limit.
func (p *parser) readLength(what string) (int, error) {
	offset := p.c.Offset()
	n, err := p.c.Uint32(what)
	if err != nil {
		return 0, err
	}
	if uint64(n) > uint64(p.maxLen) {
		return 0, &types.FormatAssertionError{
			Path:    p.c.Path(),
			Offset:  offset,
			Reason:  fmt.Sprintf("%s %d exceeds limit %d", what, n, p.maxLen),
			Context: p.c.Context(),
		}
	}
	return int(n), nil
}

func (p *parser) warn(stage, msg string, offset int64) {
	p.crate.Warnings = append(p.crate.Warnings, types.Warning{
		Stage:   stage,
		Message: msg,
		Offset:  offset,
	})
}

func isSectionPrefix(b []byte) bool {
	for _, prefix := range sectionPrefixes {
		if string(b) == prefix {
			return true
		}
	}
	return false
}
