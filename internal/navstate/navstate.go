// package navstate binds the selected year to address-bar style query state
package navstate

import (
	"net/url"
	"strconv"

	"github.com/hollowlog/yearshelf/internal/years"
)

// History receives query-state changes, one entry per year change, so
// stepping back walks through prior years in order.
//
// A nil History degrades the binder to in-memory-only state: writes still
// update the current query, they just leave no trail.
type History interface {
	// Push records a new entry for the given query state.
	Push(values url.Values)
	// Back pops the newest entry and returns the previous one.
	// ok is false when there is nothing to go back to.
	Back() (values url.Values, ok bool)
}

// Binder reads and writes the year in a query string without disturbing any
// other parameters present.
type Binder struct {
	rng     years.Range
	history History
	values  url.Values
}

// NewBinder creates a Binder over an initial raw query string, for example
// the "?year=2023" fragment a deep link launched with. A malformed query
// starts the binder with empty state.
func NewBinder(rawQuery string, rng years.Range, history History) *Binder {
	if len(rawQuery) > 0 && rawQuery[0] == '?' {
		rawQuery = rawQuery[1:]
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	return &Binder{rng: rng, history: history, values: values}
}

// ReadYear resolves the year from the current query state, applying the
// validator's fallback rules. The result is always in range.
func (b *Binder) ReadYear() int {
	return b.rng.ResolveValues(b.values)
}

// WriteYear sets the year parameter, preserving every other query
// parameter, and pushes one history entry for the change.
func (b *Binder) WriteYear(year int) {
	next := cloneValues(b.values)
	next.Set(years.QueryKey(), strconv.Itoa(year))
	b.values = next

	if b.history != nil {
		b.history.Push(cloneValues(next))
	}
}

// Back restores the previous query state, reporting the year it resolves
// to. ok is false when no history is available (nil sink or empty stack),
// in which case the current state is left untouched.
func (b *Binder) Back() (year int, ok bool) {
	if b.history == nil {
		return 0, false
	}
	values, ok := b.history.Back()
	if !ok {
		return 0, false
	}
	b.values = cloneValues(values)
	return b.ReadYear(), true
}

// Query returns the current query state rendered as a raw query string.
func (b *Binder) Query() string {
	return b.values.Encode()
}

// MemoryHistory is an in-process History backed by a stack. It stands in
// for the browser history the original gallery wrote to, and lets tests
// observe back-navigation order.
type MemoryHistory struct {
	stack []url.Values
}

// NewMemoryHistory creates an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Push records a new entry.
func (h *MemoryHistory) Push(values url.Values) {
	h.stack = append(h.stack, cloneValues(values))
}

// Back pops the newest entry and returns the one before it.
func (h *MemoryHistory) Back() (url.Values, bool) {
	if len(h.stack) < 2 {
		return nil, false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return cloneValues(h.stack[len(h.stack)-1]), true
}

// Len returns the number of recorded entries.
func (h *MemoryHistory) Len() int { return len(h.stack) }

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for k, vs := range values {
		copied := make([]string, len(vs))
		copy(copied, vs)
		clone[k] = copied
	}
	return clone
}
