// Package models defines domain entities shared across the yearshelf gallery.
//
// The package contains two categories of types:
//
// 1. Wire shapes: structs matching the JSON delivered by the shelf API
//   - [Item] : media object metadata (title, cover, id)
//   - [CategoryRecord] : one completed item with its completion timestamp
//
// 2. Aggregates: in-memory groupings used by the cache and view layers
//   - [YearEntry] : the four per-category record lists for a single year
//
// [Category] is a closed enum (book, screen, music, game). YearEntry values
// always carry all four keys; [YearEntry.Clone] enforces that invariant when
// entries cross a package boundary.
package models
