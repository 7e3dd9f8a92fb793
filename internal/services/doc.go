// Package services implements shelf data providers for the yearshelf gallery.
//
// The [Service] interface abstracts "give me everything completed in year Y
// for category C". Two implementations exist:
//
//   - [NeoDBService] talks to a NeoDB-compatible shelf API directly. It
//     paginates the completed shelf (newest first) with early termination
//     once a page falls before the target year, merges movie+tv into the
//     gallery's "screen" category, and rewrites cover URLs to thumbnails.
//   - [ProxyService] talks to a running yearshelf proxy over the simple
//     {"data": [...]} contract.
//
// Both clients propagate a context, wrap failures in shared sentinel errors,
// and never retry on their own; retry policy belongs to the fetch
// coordinator in internal/tasks.
package services
