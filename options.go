package cratekit

import (
	"github.com/go-kit/log"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/registry"
	"github.com/simonhull/cratekit/internal/types"
)

// Option configures behavior when reading crates and databases.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	crate, err := cratekit.OpenCrate("Subcrates/House.crate",
//	    cratekit.WithStrictParsing(),
//	    cratekit.WithLogger(logger),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening documents.
type openOptions struct {
	logger         log.Logger
	trace          types.TraceFunc
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	chunkSize      int
	maxRecordSize  int // 0 = types.DefaultMaxRecordSize
	registryOpts   []registry.Option
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:    log.NewNopLogger(),
		chunkSize: binary.DefaultChunkSize,
	}
}

func newOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *openOptions) parseConfig() types.ParseConfig {
	return types.ParseConfig{
		Logger:        o.logger,
		Trace:         o.trace,
		MaxRecordSize: o.maxRecordSize,
	}
}

func (o *openOptions) registry() *registry.Registry {
	return registry.New(o.registryOpts...)
}

// WithLogger sets the logger parsers report skipped data to.
//
// The default discards everything. Levels follow go-kit/log/level:
// unrecognized versions, skipped records and tempo failures are logged at
// warn, unknown fields at debug.
func WithLogger(logger log.Logger) Option {
	return func(o *openOptions) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		o.logger = logger
	}
}

// WithTrace installs a hook that observes every tag read and every decoded
// record. The hook cannot change the result.
func WithTrace(fn func(TraceEvent)) Option {
	return func(o *openOptions) {
		o.trace = fn
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, cratekit continues when it meets data it can skip, such as
// an unknown database record or an unparsable tempo, and reports it in
// the document's Warnings.
//
// Example:
//
//	db, err := cratekit.OpenDatabase("database V2", cratekit.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// The document's Warnings will always be empty. Warnings are still logged.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithChunkSize sets how many bytes are requested from the source per read.
// Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithMaxRecordSize caps any single length field. Larger values are
// reported as *FormatAssertionError instead of being allocated.
//
// Default is 16 MiB.
func WithMaxRecordSize(bytes int) Option {
	return func(o *openOptions) {
		o.maxRecordSize = bytes
	}
}

// WithFieldHandler registers fn for a database field tag, replacing the
// default text decoder. A nil fn unregisters the tag so it is treated as
// unknown.
//
// Example:
//
//	// Keep the raw bytes of tsiz instead of decoding text.
//	db, err := cratekit.OpenDatabase(path,
//	    cratekit.WithFieldHandler(cratekit.TagSize, cratekit.RawField),
//	)
func WithFieldHandler(tag Tag, fn FieldDecoder) Option {
	return func(o *openOptions) {
		o.registryOpts = append(o.registryOpts, registry.WithHandler(tag, registry.DecodeFunc(fn)))
	}
}

// WithUnknownFields sets what happens to database fields without a handler.
// The default is RetainUnknown.
func WithUnknownFields(p UnknownPolicy) Option {
	return func(o *openOptions) {
		o.registryOpts = append(o.registryOpts, registry.WithUnknownFields(p))
	}
}

// FieldDecoder turns a database field payload into a Value.
type FieldDecoder func(payload []byte) (Value, error)

// UnknownPolicy is an alias to registry.UnknownPolicy.
type UnknownPolicy = registry.UnknownPolicy

// Unknown field policies.
const (
	RetainUnknown = registry.RetainUnknown
	DropUnknown   = registry.DropUnknown
)

// TextField decodes a UTF-16BE payload. It is the default for every
// known field tag.
func TextField(payload []byte) (Value, error) {
	return registry.Text(payload)
}

// RawField keeps the payload undecoded.
func RawField(payload []byte) (Value, error) {
	return registry.Raw(payload)
}
