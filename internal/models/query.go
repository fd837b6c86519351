package models

import (
	"math"
	"strings"

	"github.com/desertthunder/ytsrc/internal/shared"
)

// SearchQuery describes the track being resolved.
type SearchQuery struct {
	Artists    []string `json:"artists"`
	Track      string   `json:"track"`
	DurationMS float64  `json:"durationMs"`
}

// NewSearchQuery copies artists so later changes by the caller do not leak into the query.
func NewSearchQuery(artists []string, track string, durationMS float64) SearchQuery {
	return SearchQuery{
		Artists:    append([]string(nil), artists...),
		Track:      track,
		DurationMS: durationMS,
	}
}

// Validate reports the first malformed field as a [*shared.ValidationError].
func (q SearchQuery) Validate() error {
	if len(q.Artists) == 0 {
		return &shared.ValidationError{Field: "artists", Reason: "must contain at least one name"}
	}
	for _, a := range q.Artists {
		if strings.TrimSpace(a) == "" {
			return &shared.ValidationError{Field: "artists", Reason: "must not contain empty names"}
		}
	}
	if strings.TrimSpace(q.Track) == "" {
		return &shared.ValidationError{Field: "track", Reason: "must not be empty"}
	}
	if math.IsNaN(q.DurationMS) || math.IsInf(q.DurationMS, 0) || q.DurationMS <= 0 {
		return &shared.ValidationError{Field: "duration", Reason: "must be a positive number of milliseconds"}
	}
	return nil
}

// Terms returns the artists followed by the track title.
func (q SearchQuery) Terms() []string {
	terms := make([]string, 0, len(q.Artists)+1)
	terms = append(terms, q.Artists...)
	return append(terms, q.Track)
}

// Text joins [SearchQuery.Terms] and extra keywords with single spaces.
func (q SearchQuery) Text(extra ...string) string {
	return strings.Join(append(q.Terms(), extra...), " ")
}
