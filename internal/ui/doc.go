// Package ui implements an interactive candidate picker using bubbletea's Elm architecture.
//
// The TUI walks through:
//  1. [ResolvingView] : Live progress while every backend is searched
//  2. [CandidateListView] : Ranked candidates, filterable, with accuracy colored by confidence
//  3. [FeedsView] : Feeds of the chosen candidate, resolved only when it is picked
//  4. [ResultView] : Shown when nothing was found or the search failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the tasks.Resolver.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
