package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/yearshelf/internal/cache"
	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/services"
	"github.com/hollowlog/yearshelf/internal/shared"
)

// FetchCoordinator ensures all four categories of the selected year are
// available, cache first.
//
// The coordinator itself never blocks on the network: Select, Retry and
// Apply are synchronous state transitions that hand FetchRequests back to
// the caller, which performs them (typically on goroutines via Fetch) and
// feeds the tagged results back through Apply.
//
// Staleness policy: a result is applied iff its year is still the selected
// year and no fresher result for that category has been applied since. A
// response for a year the user has switched back to therefore still lands,
// while a superseded response is discarded, so data for the wrong year is
// never shown.
type FetchCoordinator struct {
	mu      sync.Mutex
	service services.Service
	cache   *cache.YearCache
	logger  *log.Logger

	year    int
	states  map[models.Category]CategoryState
	seq     uint64
	applied map[models.Category]uint64 // newest applied sequence per category
}

// NewFetchCoordinator creates a coordinator over the given provider and
// cache. The cache is shared by reference so tests and the archive command
// can inspect it.
func NewFetchCoordinator(service services.Service, yearCache *cache.YearCache, logger *log.Logger) *FetchCoordinator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &FetchCoordinator{
		service: service,
		cache:   yearCache,
		logger:  logger,
		states:  make(map[models.Category]CategoryState),
		applied: make(map[models.Category]uint64),
	}
}

// Year returns the currently selected year (zero before the first Select).
func (c *FetchCoordinator) Year() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year
}

// State returns the current state of one category.
func (c *FetchCoordinator) State(category models.Category) CategoryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[category]
}

// Select switches the coordinator to a new target year.
//
// On a cache hit every category is Ready synchronously and no requests are
// returned. On a miss all four categories go Loading and one request per
// category is handed back for the caller to issue.
func (c *FetchCoordinator) Select(year int) ([]FetchRequest, []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.year = year
	events := []Event{{Kind: EventSelectedYearChanged, Year: year}}

	if entry := c.cache.Get(year); entry != nil {
		for _, category := range models.Categories {
			state := CategoryState{Phase: PhaseReady, Records: entry[category]}
			c.states[category] = state
			events = append(events, Event{
				Kind: EventCategoryStateChanged, Year: year,
				Category: category, State: state,
			})
		}
		c.logger.Debug("cache hit", "year", year)
		return nil, events
	}

	requests := make([]FetchRequest, 0, len(models.Categories))
	for _, category := range models.Categories {
		req, ev := c.beginFetch(category)
		requests = append(requests, req)
		events = append(events, ev)
	}
	return requests, events
}

// Retry re-issues the fetch for exactly one category of the selected year,
// leaving the other three untouched.
func (c *FetchCoordinator) Retry(category models.Category) (FetchRequest, []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, ev := c.beginFetch(category)
	return req, []Event{ev}
}

// beginFetch marks a category Loading and allocates its tagged request.
// Callers hold c.mu.
func (c *FetchCoordinator) beginFetch(category models.Category) (FetchRequest, Event) {
	c.seq++
	state := CategoryState{Phase: PhaseLoading}
	c.states[category] = state
	// A fresh fetch reopens the category: older in-flight results for the
	// same year may still apply until something newer lands.
	c.applied[category] = 0

	return FetchRequest{Category: category, Year: c.year, Seq: c.seq},
		Event{Kind: EventCategoryStateChanged, Year: c.year, Category: category, State: state}
}

// Fetch performs one request against the service and wraps the outcome.
// It is safe to call from any goroutine.
func (c *FetchCoordinator) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	records, err := c.service.FetchCategory(ctx, req.Category, req.Year)
	return FetchResult{Request: req, Records: records, Err: err}
}

// Apply folds a fetch result into the coordinator's state.
//
// Stale results are discarded without events: a different year than the
// current selection, or a sequence older than one already applied for the
// category.
func (c *FetchCoordinator) Apply(result FetchResult) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := result.Request
	if req.Year != c.year {
		c.logger.Debug("discarding stale result", "category", req.Category, "year", req.Year, "selected", c.year)
		return nil
	}
	if req.Seq < c.applied[req.Category] {
		c.logger.Debug("discarding superseded result", "category", req.Category, "seq", req.Seq)
		return nil
	}
	c.applied[req.Category] = req.Seq

	var state CategoryState
	if result.Err != nil {
		// The raw error goes to the log; the user sees generic text.
		c.logger.Error("category fetch failed", "category", req.Category, "year", req.Year, "err", result.Err)
		state = CategoryState{Phase: PhaseError, Message: shared.GenericFetchMessage}
	} else {
		records := result.Records
		if records == nil {
			records = []models.CategoryRecord{}
		}
		state = CategoryState{Phase: PhaseReady, Records: records}
	}
	c.states[req.Category] = state

	events := []Event{{
		Kind: EventCategoryStateChanged, Year: c.year,
		Category: req.Category, State: state,
	}}

	if ev, ok := c.maybeCacheYear(); ok {
		events = append(events, ev)
	}
	return events
}

// maybeCacheYear writes the selected year to the cache once every category
// is Ready. Partial failures are never cached. Callers hold c.mu.
func (c *FetchCoordinator) maybeCacheYear() (Event, bool) {
	entry := models.NewYearEntry()
	for _, category := range models.Categories {
		state, ok := c.states[category]
		if !ok || state.Phase != PhaseReady {
			return Event{}, false
		}
		entry[category] = state.Records
	}

	c.cache.Put(c.year, entry)
	c.logger.Debug("year cached", "year", c.year, "records", entry.Total())
	return Event{Kind: EventYearCached, Year: c.year}, true
}
