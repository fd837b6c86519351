package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/ytsrc/internal/models"
)

// Shelf categories. Labeled shelves outside the known set are keyed "other(<label>)".
const (
	CategoryTop       = "top"
	CategorySongs     = "songs"
	CategoryVideos    = "videos"
	CategoryAlbums    = "albums"
	CategoryArtists   = "artists"
	CategoryPlaylists = "playlists"
	CategoryOther     = "other"
)

var categories = map[string]string{
	"Top result": CategoryTop,
	"Songs":      CategorySongs,
	"Videos":     CategoryVideos,
	"Albums":     CategoryAlbums,
	"Artists":    CategoryArtists,
	"Playlists":  CategoryPlaylists,
}

// Cursor is a pending page of a shelf. Pass it to [MusicService.Next] to fetch the page.
//
// A continuation cursor carries Continuation and ClickTracking; an expand cursor carries Endpoint.
type Cursor struct {
	Override      string          `json:"override"`
	Continuation  string          `json:"continuation,omitempty"`
	ClickTracking string          `json:"clickTracking,omitempty"`
	Endpoint      json.RawMessage `json:"endpoint,omitempty"`
}

// IsContinuation reports whether the cursor pages through the shelf rather than expanding it.
func (c *Cursor) IsContinuation() bool { return c.Continuation != "" }

// Shelf is one categorized section of a search response.
type Shelf struct {
	Category string
	Label    string
	Items    []models.Record
	Errors   []error
	More     *Cursor
	Expand   *Cursor
}

// Shelves maps a shelf key to its shelf.
type Shelves map[string]*Shelf

// Get returns the shelf stored under key, or an empty shelf.
func (s Shelves) Get(key string) *Shelf {
	if sh, ok := s[key]; ok {
		return sh
	}
	return &Shelf{Category: categoryOf(key)}
}

// Other returns the unlabeled "other" shelf, which is where continuation pages land.
func (s Shelves) Other() *Shelf { return s.Get(CategoryOther) }

func categoryOf(key string) string {
	if strings.HasPrefix(key, CategoryOther) {
		return CategoryOther
	}
	return key
}

// ItemError describes an item that could not be turned into a [models.Record].
type ItemError struct {
	Index  int
	Reason string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
}

type searchResponse struct {
	Contents *struct {
		SectionListRenderer *struct {
			Contents []sectionRenderer `json:"contents"`
		} `json:"sectionListRenderer"`
	} `json:"contents"`
	ContinuationContents *struct {
		MusicShelfContinuation  *shelfRenderer `json:"musicShelfContinuation"`
		SectionListContinuation *shelfRenderer `json:"sectionListContinuation"`
	} `json:"continuationContents"`
}

type sectionRenderer struct {
	MusicShelfRenderer *shelfRenderer `json:"musicShelfRenderer"`
}

type shelfRenderer struct {
	Title         *textRuns      `json:"title"`
	Contents      []itemRenderer `json:"contents"`
	Continuations []struct {
		NextContinuationData *struct {
			Continuation        string `json:"continuation"`
			ClickTrackingParams string `json:"clickTrackingParams"`
		} `json:"nextContinuationData"`
	} `json:"continuations"`
	BottomEndpoint *struct {
		SearchEndpoint json.RawMessage `json:"searchEndpoint"`
	} `json:"bottomEndpoint"`
}

type textRuns struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t *textRuns) join() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (t *textRuns) first() string {
	if t == nil || len(t.Runs) == 0 {
		return ""
	}
	return t.Runs[0].Text
}

type itemRenderer struct {
	MusicResponsiveListItemRenderer *struct {
		FlexColumns []struct {
			MusicResponsiveListItemFlexColumnRenderer struct {
				Text *textRuns `json:"text"`
			} `json:"musicResponsiveListItemFlexColumnRenderer"`
		} `json:"flexColumns"`
		DoubleTapCommand *struct {
			WatchEndpoint         *models.WatchLink    `json:"watchEndpoint"`
			WatchPlaylistEndpoint *models.PlaylistLink `json:"watchPlaylistEndpoint"`
		} `json:"doubleTapCommand"`
	} `json:"musicResponsiveListItemRenderer"`
}

// ParseShelves decodes a search response into categorized shelves.
//
// When override is non-empty every item is classified with it instead of its own type column.
// Continuation responses produce a single unlabeled shelf keyed "other".
func ParseShelves(raw []byte, override string) (Shelves, error) {
	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return parseResponse(&resp, override)
}

func parseResponse(resp *searchResponse, override string) (Shelves, error) {
	var layers []*shelfRenderer
	switch {
	case resp.ContinuationContents != nil:
		layer := resp.ContinuationContents.MusicShelfContinuation
		if layer == nil {
			layer = resp.ContinuationContents.SectionListContinuation
		}
		if layer == nil {
			layer = &shelfRenderer{}
		}
		layers = append(layers, layer)
	case resp.Contents != nil && resp.Contents.SectionListRenderer != nil:
		for _, section := range resp.Contents.SectionListRenderer.Contents {
			if section.MusicShelfRenderer != nil {
				layers = append(layers, section.MusicShelfRenderer)
			} else {
				layers = append(layers, &shelfRenderer{})
			}
		}
	default:
		return nil, fmt.Errorf("search response has neither contents nor continuationContents")
	}

	shelves := make(Shelves, len(layers))
	for _, layer := range layers {
		key, shelf := parseShelf(layer, override)
		if prev, ok := shelves[key]; ok {
			prev.Items = append(prev.Items, shelf.Items...)
			prev.Errors = append(prev.Errors, shelf.Errors...)
			continue
		}
		shelves[key] = shelf
	}
	return shelves, nil
}

func parseShelf(layer *shelfRenderer, override string) (string, *Shelf) {
	label := layer.Title.first()
	category, known := categories[label]
	key := category
	switch {
	case known:
	case label != "":
		category, key = CategoryOther, fmt.Sprintf("%s(%s)", CategoryOther, label)
	default:
		category, key = CategoryOther, CategoryOther
	}

	shelf := &Shelf{Category: category, Label: label, Items: make([]models.Record, 0, len(layer.Contents))}
	for i, item := range layer.Contents {
		rec, err := parseItem(item, override)
		if err != nil {
			shelf.Errors = append(shelf.Errors, &ItemError{Index: i, Reason: err.Error()})
			continue
		}
		shelf.Items = append(shelf.Items, rec)
	}

	if category == CategoryTop {
		return key, shelf
	}

	next := override
	if next == "" && label != "" {
		next = label[:len(label)-1]
	}

	if len(layer.Continuations) > 0 && layer.Continuations[0].NextContinuationData != nil {
		data := layer.Continuations[0].NextContinuationData
		shelf.More = &Cursor{Override: next, Continuation: data.Continuation, ClickTracking: data.ClickTrackingParams}
	}
	if layer.BottomEndpoint != nil && len(layer.BottomEndpoint.SearchEndpoint) > 0 {
		shelf.Expand = &Cursor{Override: next, Endpoint: layer.BottomEndpoint.SearchEndpoint}
	}
	return key, shelf
}

func parseItem(item itemRenderer, override string) (models.Record, error) {
	content := item.MusicResponsiveListItemRenderer
	if content == nil {
		return nil, fmt.Errorf("missing musicResponsiveListItemRenderer")
	}
	if len(content.FlexColumns) == 0 {
		return nil, fmt.Errorf("no flex columns")
	}

	tags := make([]string, 0, len(content.FlexColumns))
	for _, col := range content.FlexColumns {
		tags = append(tags, col.MusicResponsiveListItemFlexColumnRenderer.Text.join())
	}

	label := override
	if label == "" && len(tags) > 1 {
		label = tags[1]
		tags = append(tags[:1], tags[2:]...)
	}

	var (
		watch models.WatchLink
		list  models.PlaylistLink
	)
	kind := models.ParseKind(label)
	cmd := content.DoubleTapCommand
	switch kind {
	case models.KindSong, models.KindVideo:
		if cmd == nil || cmd.WatchEndpoint == nil {
			return nil, fmt.Errorf("%s has no watch endpoint", label)
		}
		if cmd.WatchEndpoint.VideoID == "" {
			return nil, fmt.Errorf("%s has no video id", label)
		}
		watch = *cmd.WatchEndpoint
	case models.KindAlbum, models.KindArtist, models.KindPlaylist:
		if cmd == nil || cmd.WatchPlaylistEndpoint == nil {
			return nil, fmt.Errorf("%s has no playlist endpoint", label)
		}
		list = *cmd.WatchPlaylistEndpoint
	}
	return models.NewRecord(label, tags, watch, list), nil
}
