// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing scraped playlist results:
//  1. [RecordListView] : Browse the rows of the results workbook
//  2. [DetailView] : Inspect a single playlist record
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Results are loaded asynchronously from the workbook store, so a large
// workbook never blocks the first render.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
