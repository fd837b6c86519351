// Package models defines the domain types shared by the search backends, the ranking code and the CLI.
//
// The package contains three groups of types:
//
// 1. Search input
//   - [SearchQuery] : artists, track title and target duration of the track being resolved
//
// 2. Search results
//   - [Record] : tagged union of shelf items ([Song], [Video], [Album], [Artist], [Playlist], [Other])
//   - [Candidate] : a ranked, playable result carrying its accuracy and a lazy [FeedResolver]
//   - [FeedInfo] : downloadable formats for a candidate, produced only when the resolver is invoked
//
// 3. Persistent entities
//   - [APIKey] : a cached backend credential
//
// Durations arrive as text ("3:45", "1:02:03") and are converted with [ParseDuration].
package models
