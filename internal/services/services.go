// package services defines interface Service for resolving tracks against search backends
//
// YouTube Music (innertube shelf search), YouTube (video search)
package services

import (
	"context"

	"github.com/desertthunder/ytsrc/internal/models"
)

// Service defines the interface for search backends that turn a track description into ranked candidates.
type Service interface {
	// Search returns candidates for q ordered by descending accuracy.
	// Every returned candidate has a non-nil, not yet invoked feed resolver.
	Search(ctx context.Context, q models.SearchQuery) ([]models.Candidate, error)

	// Meta describes the backend.
	Meta() Meta

	// Name returns the display name of the backend (e.g., "YouTube Music")
	Name() string
}

// Props are capability flags of a backend.
type Props struct {
	Queryable  bool `json:"isQueryable"`
	Searchable bool `json:"isSearchable"`
	Sourceable bool `json:"isSourceable"`
}

// Meta describes a backend.
type Meta struct {
	ID       string `json:"id"`
	Desc     string `json:"desc"`
	Props    Props  `json:"props"`
	Bitrates []int  `json:"bitrates"`
}

var bitrates = []int{96, 128, 160, 192, 256, 320}

var (
	MusicMeta = Meta{
		ID:       "yt_music",
		Desc:     "YouTube Music",
		Props:    Props{Searchable: true, Sourceable: true},
		Bitrates: bitrates,
	}
	YouTubeMeta = Meta{
		ID:       "youtube",
		Desc:     "YouTube",
		Props:    Props{Searchable: true, Sourceable: true},
		Bitrates: bitrates,
	}
)
