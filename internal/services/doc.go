// Package services defines the [Service] interface for track search backends and implements it for YouTube Music and YouTube.
//
// # Service Interface
//
// Both backends take a [models.SearchQuery] and return [models.Candidate] values ranked by accuracy.
// Each candidate carries a feed resolver built by [NewFeedResolver]; nothing is downloaded until it is called.
//
// # YouTube Music Implementation
//
// [MusicService] talks to the innertube search endpoint as the WEB_REMIX client.
// The API key is scraped from the home page by a [PageKeyProvider] and memoized; a [KeyStore] can persist it across runs.
//
// Responses are decoded by [ParseShelves] into [Shelves] keyed by category.
// Shelves other than "top" may carry a [Cursor] for the next page or the expanded view, fetched with [MusicService.Next].
//
// # YouTube Implementation
//
// [YouTubeService] fans out one [VideoSearcher] call per entry of [SubQueries], at most three at a time.
// A failing sub-query is logged and skipped. Titles must name every artist and the track and must not be "8D" style remixes.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ValidationError] : malformed query
//   - [shared.TransportError] : HTTP request failed or returned a non 2xx status
//   - [shared.CredentialExtractionError] : API key marker missing from the page
package services
