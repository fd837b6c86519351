package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/ranking"
	"github.com/desertthunder/ytsrc/internal/shared"
)

const (
	defaultMusicBaseURL = "https://music.youtube.com"
	defaultMusicTimeout = 10 * time.Second
)

// MusicService searches YouTube Music through the innertube WEB_REMIX client.
type MusicService struct {
	baseURL string
	hl, gl  string
	keys    CredentialProvider
	feeder  Feeder
	http    *transport
	logger  *log.Logger
}

// MusicOpts configures a [MusicService].
type MusicOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	HL                string
	GL                string
	Keys              CredentialProvider // defaults to a [PageKeyProvider] on BaseURL
	Feeder            Feeder
	Logger            *log.Logger
}

// NewMusicService creates a [MusicService], filling unset options with defaults.
func NewMusicService(opts MusicOpts) *MusicService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultMusicBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = defaultMusicTimeout
	}
	if opts.HL == "" {
		opts.HL = "en"
	}
	if opts.GL == "" {
		opts.GL = "US"
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Keys == nil {
		opts.Keys = NewPageKeyProvider(KeyProviderOpts{
			PageURL:    opts.BaseURL + "/",
			HTTPClient: opts.HTTPClient,
			UserAgent:  opts.UserAgent,
			Logger:     opts.Logger,
		})
	}
	if opts.Feeder == nil {
		opts.Feeder = NewYTDLP(YTDLPOpts{Logger: opts.Logger})
	}

	return &MusicService{
		baseURL: opts.BaseURL,
		hl:      opts.HL,
		gl:      opts.GL,
		keys:    opts.Keys,
		feeder:  opts.Feeder,
		http:    newTransport(opts.HTTPClient, opts.UserAgent, opts.Timeout, opts.RequestsPerSecond),
		logger:  shared.WithLogger(opts.Logger, "service", MusicMeta.ID),
	}
}

func (s *MusicService) Meta() Meta    { return MusicMeta }
func (s *MusicService) Name() string { return MusicMeta.Desc }

// Shelves runs a search for text and returns the categorized response.
func (s *MusicService) Shelves(ctx context.Context, text string) (Shelves, error) {
	return s.search(ctx, map[string]any{"query": text}, nil, "")
}

// Next fetches the page c points at and returns the "other" shelf of the response,
// which is empty when the response carries none.
func (s *MusicService) Next(ctx context.Context, c *Cursor) (*Shelf, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil cursor", shared.ErrInvalidArgument)
	}

	var (
		shelves Shelves
		err     error
	)
	if c.IsContinuation() {
		params := url.Values{}
		params.Set("icit", c.ClickTracking)
		params.Set("continuation", c.Continuation)
		shelves, err = s.search(ctx, map[string]any{}, params, c.Override)
	} else {
		var payload map[string]any
		if err := json.Unmarshal(c.Endpoint, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode expand endpoint: %w", err)
		}
		shelves, err = s.search(ctx, payload, nil, c.Override)
	}
	if err != nil {
		return nil, err
	}
	return shelves.Other(), nil
}

// Search finds playable records for q in the top, songs and videos shelves and ranks them by accuracy.
func (s *MusicService) Search(ctx context.Context, q models.SearchQuery) ([]models.Candidate, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	shelves, err := s.Shelves(ctx, q.Text())
	if err != nil {
		return nil, err
	}

	var items []models.Playable
	for _, key := range []string{CategoryTop, CategorySongs, CategoryVideos} {
		for _, rec := range shelves.Get(key).Items {
			if p, ok := rec.(models.Playable); ok {
				items = append(items, p)
			}
		}
	}

	ranked := ranking.Rank(items,
		func(p models.Playable) string { return p.Watch().VideoID },
		func(p models.Playable) float64 {
			return ranking.MusicAccuracy(p.Kind(), models.ParseDuration(p.Length()), q.DurationMS)
		},
	)

	out := make([]models.Candidate, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, s.candidate(r.Item, r.Accuracy))
	}
	s.logger.Debug("search complete", "query", q.Text(), "candidates", len(out))
	return out, nil
}

func (s *MusicService) candidate(p models.Playable, accuracy float64) models.Candidate {
	link := p.Watch()
	c := models.Candidate{
		Source:     MusicMeta.ID,
		Kind:       p.Kind(),
		Type:       p.Kind().String(),
		Title:      p.Name(),
		Duration:   p.Length(),
		DurationMS: models.ParseDuration(p.Length()),
		VideoID:    link.VideoID,
		PlaylistID: link.PlaylistID,
		Accuracy:   accuracy,
		GetFeeds:   NewFeedResolver(s.feeder, link.VideoID),
	}
	switch v := p.(type) {
	case models.Song:
		c.Artists, c.Album = v.Artists, v.Album
	case models.Video:
		c.Artists, c.Views = v.Artists, v.Views
	}
	return c
}

func (s *MusicService) search(ctx context.Context, payload map[string]any, extra url.Values, override string) (Shelves, error) {
	key, err := s.keys.Key(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}

	params := url.Values{}
	params.Set("alt", "json")
	params.Set("key", key)
	for k, vs := range extra {
		params[k] = vs
	}

	body := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    "WEB_REMIX",
				"clientVersion": "0.1",
				"hl":            s.hl,
				"gl":            s.gl,
			},
		},
	}
	for k, v := range payload {
		body[k] = v
	}

	var resp searchResponse
	headers := map[string]string{"Referer": s.baseURL + "/search"}
	if err := s.http.postJSON(ctx, s.baseURL+"/youtubei/v1/search", params, body, headers, &resp); err != nil {
		return nil, err
	}

	shelves, err := parseResponse(&resp, override)
	if err != nil {
		return nil, err
	}
	for key, shelf := range shelves {
		for _, e := range shelf.Errors {
			s.logger.Warn("skipped shelf item", "shelf", key, "error", e)
		}
	}
	return shelves, nil
}
