// package models defines the data model for the yearshelf gallery
package models

import (
	"fmt"
	"time"
)

// Category identifies one of the four media types tracked by the gallery.
type Category string

const (
	CategoryBook   Category = "book"
	CategoryScreen Category = "screen"
	CategoryMusic  Category = "music"
	CategoryGame   Category = "game"
)

// Categories lists every gallery category in display order.
//
// The set is closed: a YearEntry always carries exactly these four keys.
var Categories = []Category{CategoryBook, CategoryScreen, CategoryMusic, CategoryGame}

// ParseCategory validates a category name from user or URL input.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Item is the media object embedded in a shelf record.
type Item struct {
	ID            string `json:"id"`
	DisplayTitle  string `json:"display_title"`
	CoverImageURL string `json:"cover_image_url"`
}

// CategoryRecord is one consumed item: the media object plus the moment it
// was marked complete. Immutable once received from the API.
type CategoryRecord struct {
	Item        Item   `json:"item"`
	CreatedTime string `json:"created_time"` // ISO-8601, as delivered upstream
}

// CreatedAt parses the record's completion timestamp.
func (r CategoryRecord) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, r.CreatedTime)
}

// YearEntry maps each category to the records completed in one year.
type YearEntry map[Category][]CategoryRecord

// NewYearEntry returns an entry with all four categories present and empty.
func NewYearEntry() YearEntry {
	entry := make(YearEntry, len(Categories))
	for _, c := range Categories {
		entry[c] = []CategoryRecord{}
	}
	return entry
}

// Clone returns a deep copy of the entry with every category key present,
// defaulting missing categories to empty slices.
func (e YearEntry) Clone() YearEntry {
	clone := make(YearEntry, len(Categories))
	for _, c := range Categories {
		records := make([]CategoryRecord, len(e[c]))
		copy(records, e[c])
		clone[c] = records
	}
	return clone
}

// Total counts records across all categories.
func (e YearEntry) Total() int {
	n := 0
	for _, records := range e {
		n += len(records)
	}
	return n
}
