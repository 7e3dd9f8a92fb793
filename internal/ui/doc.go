// Package ui implements an interactive terminal gallery using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [GalleryView] : Browse the selected year's records, one section per category
//  2. [YearSelectView] : Pick a year through the combobox state machine
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Fetch results flow back in as messages produced by tea.Cmd closures, so the
// update loop never blocks on the network; the fetch coordinator decides what
// each result means (apply, discard as stale, cache the year).
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, y, r, b, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
