package types

import "testing"

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		name   string
		marker string
	}{
		{FormatCrate, "Crate", CrateMarker},
		{FormatDatabase, "Database", DatabaseMarker},
		{FormatUnknown, "Unknown", ""},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.format.Marker(); got != tt.marker {
			t.Errorf("%v.Marker() = %q, want %q", tt.format, got, tt.marker)
		}
	}

	if ext := FormatCrate.Extensions(); len(ext) != 1 || ext[0] != ".crate" {
		t.Errorf("FormatCrate.Extensions() = %v", ext)
	}
	if ext := FormatDatabase.Extensions(); ext != nil {
		t.Errorf("FormatDatabase.Extensions() = %v, want nil", ext)
	}
}

func TestIsRecognizedVersion(t *testing.T) {
	for _, v := range []string{"81.0", "@2.0"} {
		if !IsRecognizedVersion(v) {
			t.Errorf("IsRecognizedVersion(%q) = false", v)
		}
	}
	if IsRecognizedVersion("99.9") {
		t.Error(`IsRecognizedVersion("99.9") = true`)
	}
}

func TestParseConfig_WithDefaults(t *testing.T) {
	cfg := ParseConfig{}.WithDefaults()
	if cfg.Logger == nil {
		t.Error("Logger is nil")
	}
	if cfg.MaxRecordSize != DefaultMaxRecordSize {
		t.Errorf("MaxRecordSize = %d, want %d", cfg.MaxRecordSize, DefaultMaxRecordSize)
	}

	cfg = ParseConfig{MaxRecordSize: 64}.WithDefaults()
	if cfg.MaxRecordSize != 64 {
		t.Errorf("MaxRecordSize = %d, want 64", cfg.MaxRecordSize)
	}

	var called bool
	var trace TraceFunc
	trace.Emit(TraceEvent{}) // nil is a no-op
	trace = func(TraceEvent) { called = true }
	trace.Emit(TraceEvent{Kind: TraceRecord})
	if !called {
		t.Error("Emit did not call the trace func")
	}
}
