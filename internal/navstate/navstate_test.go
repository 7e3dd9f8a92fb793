package navstate

import (
	"strings"
	"testing"
	"time"

	"github.com/hollowlog/yearshelf/internal/years"
)

func testRange() years.Range {
	return years.NewRange(0, func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	})
}

func TestBinder(t *testing.T) {
	t.Run("ReadYear Applies Fallback Rules", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
			want int
		}{
			{"Valid", "?year=2023", 2023},
			{"Clamp Low", "?year=1999", 2020},
			{"Snap High", "?year=9999", 2024},
			{"Absent", "?tab=books", 2024},
			{"Malformed", "?year=abc", 2024},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := NewBinder(tt.raw, testRange(), nil)
				if got := b.ReadYear(); got != tt.want {
					t.Errorf("ReadYear() = %d, want %d", got, tt.want)
				}
			})
		}
	})

	t.Run("WriteYear Preserves Other Params", func(t *testing.T) {
		b := NewBinder("?tab=books&sort=title", testRange(), NewMemoryHistory())
		b.WriteYear(2022)

		if got := b.ReadYear(); got != 2022 {
			t.Fatalf("ReadYear() after write = %d, want 2022", got)
		}

		query := b.Query()
		for _, fragment := range []string{"tab=books", "sort=title", "year=2022"} {
			if !strings.Contains(query, fragment) {
				t.Errorf("Query() = %q, missing %q", query, fragment)
			}
		}
	})

	t.Run("Back Steps Through Prior Years In Order", func(t *testing.T) {
		history := NewMemoryHistory()
		b := NewBinder("", testRange(), history)

		b.WriteYear(2021)
		b.WriteYear(2022)
		b.WriteYear(2023)

		if history.Len() != 3 {
			t.Fatalf("history.Len() = %d, want 3 (one entry per change)", history.Len())
		}

		if y, ok := b.Back(); !ok || y != 2022 {
			t.Errorf("first Back() = (%d, %v), want (2022, true)", y, ok)
		}
		if y, ok := b.Back(); !ok || y != 2021 {
			t.Errorf("second Back() = (%d, %v), want (2021, true)", y, ok)
		}
		if _, ok := b.Back(); ok {
			t.Error("Back() past the oldest entry should report ok=false")
		}
	})

	t.Run("Nil History Is A No-Op Sink", func(t *testing.T) {
		b := NewBinder("?year=2021", testRange(), nil)
		b.WriteYear(2023)

		// State still updates in memory; there is just nothing to go back to.
		if got := b.ReadYear(); got != 2023 {
			t.Errorf("ReadYear() = %d, want 2023", got)
		}
		if _, ok := b.Back(); ok {
			t.Error("Back() with nil history should report ok=false")
		}
	})

	t.Run("History Entries Are Isolated", func(t *testing.T) {
		history := NewMemoryHistory()
		b := NewBinder("?tab=books", testRange(), history)
		b.WriteYear(2021)
		b.WriteYear(2022)

		// Mutating the binder after the fact must not rewrite history.
		b.WriteYear(2024)
		if y, ok := b.Back(); !ok || y != 2022 {
			t.Errorf("Back() = (%d, %v), want (2022, true)", y, ok)
		}
	})
}
