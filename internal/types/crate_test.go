package types

import (
	"slices"
	"testing"
)

func TestNewCrate(t *testing.T) {
	c := NewCrate("Warmup")

	if !slices.Equal(c.Columns, DefaultColumns) {
		t.Errorf("Columns = %v, want %v", c.Columns, DefaultColumns)
	}
	if c.Tracks == nil || len(c.Tracks) != 0 {
		t.Errorf("Tracks = %#v, want empty non-nil slice", c.Tracks)
	}
	if c.Sort != nil {
		t.Errorf("Sort = %+v, want nil", c.Sort)
	}

	// Columns must not alias the package default.
	c.Columns[0] = "bpm"
	if DefaultColumns[0] != "song" {
		t.Errorf("DefaultColumns modified through crate: %v", DefaultColumns)
	}
}

func TestCrate_Hierarchy(t *testing.T) {
	tests := []struct {
		name       string
		path       []string
		parent     string
		isSubcrate bool
		display    string
	}{
		{"Warmup", []string{"Warmup"}, "", false, "Warmup"},
		{"Sets%%Warmup", []string{"Sets", "Warmup"}, "Sets", true, "Sets/Warmup"},
		{"Sets%%2024%%Peak", []string{"Sets", "2024", "Peak"}, "Sets%%2024", true, "Sets/2024/Peak"},
		{"", nil, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCrate(tt.name)

			if got := c.Path(); !slices.Equal(got, tt.path) {
				t.Errorf("Path() = %v, want %v", got, tt.path)
			}
			if got := c.Parent(); got != tt.parent {
				t.Errorf("Parent() = %q, want %q", got, tt.parent)
			}
			if got := c.IsSubcrate(); got != tt.isSubcrate {
				t.Errorf("IsSubcrate() = %v, want %v", got, tt.isSubcrate)
			}
			if got := c.String(); got != tt.display {
				t.Errorf("String() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestDatabase_String(t *testing.T) {
	db := &Database{Version: "@2.0"}
	if got := db.String(); got != "Serato Scratch LIVE Database" {
		t.Errorf("String() = %q", got)
	}
}
