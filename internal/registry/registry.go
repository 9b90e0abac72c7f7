// Package registry maps database field tags to decode functions.
package registry

import (
	"maps"
	"slices"

	"github.com/simonhull/cratekit/internal/binary"
	"github.com/simonhull/cratekit/internal/types"
)

// DecodeFunc turns a field payload into a value.
type DecodeFunc func(payload []byte) (types.Value, error)

// UnknownPolicy decides what happens to fields without a handler.
type UnknownPolicy int

const (
	// RetainUnknown keeps unknown payloads in Track.Unknown.
	RetainUnknown UnknownPolicy = iota
	// DropUnknown discards them after logging.
	DropUnknown
)

// Registry is an immutable tag to DecodeFunc table.
//
// A Registry is built once by New and never modified afterwards, so it can
// be shared between parses.
type Registry struct {
	handlers map[types.Tag]DecodeFunc
	unknown  UnknownPolicy
}

// Option configures a Registry under construction.
type Option func(*Registry)

// WithHandler registers fn for tag, replacing any default.
func WithHandler(tag types.Tag, fn DecodeFunc) Option {
	return func(r *Registry) {
		if fn == nil {
			delete(r.handlers, tag)
			return
		}
		r.handlers[tag] = fn
	}
}

// WithoutHandler removes tag so it is treated as unknown.
func WithoutHandler(tag types.Tag) Option {
	return func(r *Registry) {
		delete(r.handlers, tag)
	}
}

// WithUnknownFields sets the policy for unregistered tags.
func WithUnknownFields(p UnknownPolicy) Option {
	return func(r *Registry) {
		r.unknown = p
	}
}

// New builds a Registry with Text registered for every types.FieldTags
// entry, then applies opts in order.
func New(opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[types.Tag]DecodeFunc, len(types.FieldTags)),
		unknown:  RetainUnknown,
	}
	for _, tag := range types.FieldTags {
		r.handlers[tag] = Text
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the decode function for tag.
func (r *Registry) Lookup(tag types.Tag) (DecodeFunc, bool) {
	fn, ok := r.handlers[tag]
	return fn, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []types.Tag {
	return slices.Sorted(maps.Keys(r.handlers))
}

// UnknownFields returns the unknown-field policy.
func (r *Registry) UnknownFields() UnknownPolicy {
	return r.unknown
}

// Text decodes a UTF-16BE payload.
func Text(payload []byte) (types.Value, error) {
	s, err := binary.DecodeText(payload)
	if err != nil {
		return types.Value{}, err
	}
	return types.TextValue(s), nil
}

// Raw keeps the payload undecoded. The payload is copied.
func Raw(payload []byte) (types.Value, error) {
	return types.BytesValue(slices.Clone(payload)), nil
}
