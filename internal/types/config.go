package types

import "github.com/go-kit/log"

// DefaultMaxRecordSize caps a single TLV payload. Real records are a few
// kilobytes; larger lengths indicate corruption.
const DefaultMaxRecordSize = 16 << 20

// ParseConfig carries the ambient settings shared by the document parsers.
type ParseConfig struct {
	Logger        log.Logger
	Trace         TraceFunc
	MaxRecordSize int
}

// WithDefaults returns a copy of c with zero fields filled in.
func (c ParseConfig) WithDefaults() ParseConfig {
	if c.Logger == nil {
		c.Logger = log.NewNopLogger()
	}
	if c.MaxRecordSize <= 0 {
		c.MaxRecordSize = DefaultMaxRecordSize
	}
	return c
}
