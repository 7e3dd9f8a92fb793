// package years validates and resolves gallery years against the supported range
package years

import (
	"net/url"
	"strconv"
	"time"
)

// EarliestSupportedYear is the first year the gallery has data for.
const EarliestSupportedYear = 2020

// queryKey is the URL query parameter carrying the selected year.
const queryKey = "year"

// Clock supplies the current time. Injected so range-boundary tests can pin
// a fixed year instead of depending on the wall clock.
type Clock func() time.Time

// SystemClock is the default [Clock] backed by [time.Now].
func SystemClock() time.Time { return time.Now() }

// Range validates years against [EarliestSupportedYear, currentYear], where
// the current year is recomputed from the clock on every call.
type Range struct {
	earliest int
	clock    Clock
}

// NewRange creates a Range with the given earliest year and clock.
// Zero values fall back to [EarliestSupportedYear] and [SystemClock].
func NewRange(earliest int, clock Clock) Range {
	if earliest <= 0 {
		earliest = EarliestSupportedYear
	}
	if clock == nil {
		clock = SystemClock
	}
	return Range{earliest: earliest, clock: clock}
}

// Earliest returns the first supported year.
func (r Range) Earliest() int { return r.earliest }

// CurrentYear returns the calendar year reported by the clock.
func (r Range) CurrentYear() int { return r.clock().Year() }

// IsValid reports whether y lies within the supported range.
func (r Range) IsValid(y int) bool {
	return y >= r.earliest && y <= r.CurrentYear()
}

// ParseQuery extracts the year parameter from a raw query string.
//
// A missing, empty, or non-integer value returns ok=false; malformed input
// is a signal to use the fallback, never an error.
func ParseQuery(raw string) (year int, ok bool) {
	raw = trimLeadingQuestion(raw)
	values, err := url.ParseQuery(raw)
	if err != nil {
		return 0, false
	}
	return ParseValues(values)
}

// ParseValues extracts the year parameter from parsed query values.
func ParseValues(values url.Values) (year int, ok bool) {
	s := values.Get(queryKey)
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// Resolve applies the fallback rules to a raw query string and always
// returns an in-range year:
//
//   - valid year: returned unchanged
//   - below range: clamped to the earliest supported year
//   - above range, absent, or malformed: snapped to the current year
//
// The asymmetry is deliberate: a typo'd future year collapses to "now",
// while a genuinely old request opens at the earliest shelf instead of
// silently jumping forward.
func (r Range) Resolve(raw string) int {
	y, ok := ParseQuery(raw)
	return r.resolve(y, ok)
}

// ResolveValues is [Range.Resolve] for already-parsed query values.
func (r Range) ResolveValues(values url.Values) int {
	y, ok := ParseValues(values)
	return r.resolve(y, ok)
}

// ResolveBare applies the same fallback rules to a bare year string, such
// as a CLI flag value ("2023" rather than "?year=2023").
func (r Range) ResolveBare(s string) int {
	y, err := strconv.Atoi(s)
	return r.resolve(y, err == nil)
}

func (r Range) resolve(y int, ok bool) int {
	switch {
	case ok && r.IsValid(y):
		return y
	case ok && y < r.earliest:
		return r.earliest
	default:
		return r.CurrentYear()
	}
}

// Available returns every supported year in ascending order.
func (r Range) Available() []int {
	current := r.CurrentYear()
	if current < r.earliest {
		return []int{r.earliest}
	}
	available := make([]int, 0, current-r.earliest+1)
	for y := r.earliest; y <= current; y++ {
		available = append(available, y)
	}
	return available
}

// QueryKey returns the query parameter name used for year selection.
func QueryKey() string { return queryKey }

func trimLeadingQuestion(raw string) string {
	if len(raw) > 0 && raw[0] == '?' {
		return raw[1:]
	}
	return raw
}
