package types

// TraceKind identifies the checkpoint a TraceEvent was emitted from.
type TraceKind int

const (
	// TraceTag fires after a section, record or field tag is read.
	TraceTag TraceKind = iota
	// TraceRecord fires after a crate track or database track is decoded.
	TraceRecord
)

// TraceEvent describes one parser checkpoint.
type TraceEvent struct {
	Kind   TraceKind
	Tag    Tag
	Offset int64

	// Index is the position of the decoded record for TraceRecord events.
	Index int
}

// TraceFunc observes parser checkpoints. It cannot influence parsing.
type TraceFunc func(TraceEvent)

// Emit calls fn if it is non-nil.
func (fn TraceFunc) Emit(ev TraceEvent) {
	if fn != nil {
		fn(ev)
	}
}
