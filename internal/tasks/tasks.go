// package tasks implements the per-year fetch lifecycle for the gallery.
//
// The core abstraction is FetchCoordinator, which keeps the four category
// shelves of the currently selected year in one of three states (loading,
// error, ready), preferring the year cache over the network. State changes
// are reported as events for the view layer.
package tasks

import (
	"github.com/hollowlog/yearshelf/internal/models"
)

// Phase enumerates the lifecycle of one category fetch.
type Phase int

const (
	// PhaseLoading means a request for the category is in flight.
	PhaseLoading Phase = iota
	// PhaseError means the last request failed; Message carries the
	// user-facing text, never the raw upstream error.
	PhaseError
	// PhaseReady means Records holds the category's data for the year.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// CategoryState is the transient fetch state of one category for the
// currently selected year. It is recomputed on every year change and never
// stored in the cache.
type CategoryState struct {
	Phase   Phase
	Message string                  // generic user-facing text when Phase is PhaseError
	Records []models.CategoryRecord // populated when Phase is PhaseReady
}

// FetchRequest describes one category fetch the caller must issue. Requests
// are tagged with the year and a sequence number so late responses can be
// matched against the coordinator's current selection.
type FetchRequest struct {
	Category models.Category
	Year     int
	Seq      uint64
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Request FetchRequest
	Records []models.CategoryRecord
	Err     error
}

// EventKind enumerates coordinator events.
type EventKind int

const (
	// EventSelectedYearChanged fires once per Select call.
	EventSelectedYearChanged EventKind = iota
	// EventCategoryStateChanged fires whenever one category's state moves.
	EventCategoryStateChanged
	// EventYearCached fires when a complete year is written to the cache.
	EventYearCached
)

// Event is a state-change notification for the view layer.
type Event struct {
	Kind     EventKind
	Year     int
	Category models.Category // set for EventCategoryStateChanged
	State    CategoryState   // set for EventCategoryStateChanged
}
