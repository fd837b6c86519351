package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
)

const (
	defaultVideoBaseURL       = "https://www.youtube.com"
	defaultVideoTimeout       = 10 * time.Second
	defaultWebClientVersion   = "2.20240726.00.00"
	defaultVideoPageEnd       = 2
	defaultVideoResultsPerReq = 20
)

// VideoSearcher runs a plain video search.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, s VideoSearch) (*VideoResults, error)
}

// VideoSearch is one video search request. Pages are 1-based and inclusive.
type VideoSearch struct {
	Query     string
	PageStart int
	PageEnd   int
}

// VideoResults holds the videos found across the requested pages, in page order.
type VideoResults struct {
	Videos []Video
}

// Video is a video search hit.
type Video struct {
	VideoID   string
	Title     string
	Seconds   float64
	Timestamp string
	Views     int64
	Author    Author
}

// Author is the channel that uploaded a [Video].
type Author struct {
	Name string
	URL  string
}

// WebVideoSearcher searches YouTube through the innertube WEB client and follows continuation tokens across pages.
type WebVideoSearcher struct {
	baseURL       string
	clientVersion string
	hl, gl        string
	http          *transport
	logger        *log.Logger
}

// VideoSearcherOpts configures a [WebVideoSearcher].
type VideoSearcherOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	UserAgent         string
	ClientVersion     string
	Timeout           time.Duration
	RequestsPerSecond float64
	HL                string
	GL                string
	Logger            *log.Logger
}

// NewWebVideoSearcher creates a [WebVideoSearcher].
func NewWebVideoSearcher(opts VideoSearcherOpts) *WebVideoSearcher {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultVideoBaseURL
	}
	if opts.ClientVersion == "" {
		opts.ClientVersion = defaultWebClientVersion
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultVideoTimeout
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
	return &WebVideoSearcher{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		clientVersion: opts.ClientVersion,
		hl:            opts.HL,
		gl:            opts.GL,
		http:          newTransport(opts.HTTPClient, opts.UserAgent, opts.Timeout, opts.RequestsPerSecond),
		logger:        opts.Logger,
	}
}

type webSearchResponse struct {
	Contents *struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []webSection `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
	OnResponseReceivedCommands []struct {
		AppendContinuationItemsAction *struct {
			ContinuationItems []webSection `json:"continuationItems"`
		} `json:"appendContinuationItemsAction"`
	} `json:"onResponseReceivedCommands"`
}

type webSection struct {
	ItemSectionRenderer *struct {
		Contents []struct {
			VideoRenderer *videoRenderer `json:"videoRenderer"`
		} `json:"contents"`
	} `json:"itemSectionRenderer"`
	ContinuationItemRenderer *struct {
		ContinuationEndpoint struct {
			ContinuationCommand struct {
				Token string `json:"token"`
			} `json:"continuationCommand"`
		} `json:"continuationEndpoint"`
	} `json:"continuationItemRenderer"`
}

type simpleText struct {
	SimpleText string `json:"simpleText"`
	textRuns
}

func (t *simpleText) String() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	return t.join()
}

type videoRenderer struct {
	VideoID       string      `json:"videoId"`
	Title         *simpleText `json:"title"`
	LengthText    *simpleText `json:"lengthText"`
	ViewCountText *simpleText `json:"viewCountText"`
	OwnerText     *struct {
		Runs []struct {
			Text               string `json:"text"`
			NavigationEndpoint struct {
				CommandMetadata struct {
					WebCommandMetadata struct {
						URL string `json:"url"`
					} `json:"webCommandMetadata"`
				} `json:"commandMetadata"`
			} `json:"navigationEndpoint"`
		} `json:"runs"`
	} `json:"ownerText"`
}

// SearchVideos fetches pages 1 through s.PageEnd and returns the videos of pages s.PageStart onward.
// Live streams and other entries without a length are skipped.
func (w *WebVideoSearcher) SearchVideos(ctx context.Context, s VideoSearch) (*VideoResults, error) {
	if strings.TrimSpace(s.Query) == "" {
		return nil, &shared.ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if s.PageStart < 1 {
		s.PageStart = 1
	}
	if s.PageEnd < s.PageStart {
		s.PageEnd = max(s.PageStart, defaultVideoPageEnd)
	}

	results := &VideoResults{Videos: make([]Video, 0, defaultVideoResultsPerReq*(s.PageEnd-s.PageStart+1))}
	token := ""
	for page := 1; page <= s.PageEnd; page++ {
		body := map[string]any{"context": w.clientContext()}
		if page == 1 {
			body["query"] = s.Query
		} else {
			body["continuation"] = token
		}

		var resp webSearchResponse
		if err := w.http.postJSON(ctx, w.baseURL+"/youtubei/v1/search", nil, body, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch page %d of %q: %w", page, s.Query, err)
		}

		videos, next := resp.page()
		if page >= s.PageStart {
			results.Videos = append(results.Videos, videos...)
		}
		w.logger.Debug("video search page", "query", s.Query, "page", page, "videos", len(videos))

		if next == "" {
			break
		}
		token = next
	}
	return results, nil
}

func (w *WebVideoSearcher) clientContext() map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":    "WEB",
			"clientVersion": w.clientVersion,
			"hl":            w.hl,
			"gl":            w.gl,
		},
	}
}

func (r *webSearchResponse) page() ([]Video, string) {
	var sections []webSection
	if r.Contents != nil {
		sections = r.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	}
	for _, cmd := range r.OnResponseReceivedCommands {
		if cmd.AppendContinuationItemsAction != nil {
			sections = append(sections, cmd.AppendContinuationItemsAction.ContinuationItems...)
		}
	}

	var (
		videos []Video
		token  string
	)
	for _, section := range sections {
		if c := section.ContinuationItemRenderer; c != nil {
			token = c.ContinuationEndpoint.ContinuationCommand.Token
			continue
		}
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			if v, ok := item.VideoRenderer.video(); ok {
				videos = append(videos, v)
			}
		}
	}
	return videos, token
}

func (r *videoRenderer) video() (Video, bool) {
	if r == nil || r.VideoID == "" || r.LengthText == nil {
		return Video{}, false
	}
	timestamp := r.LengthText.String()
	ms := models.ParseDuration(timestamp)
	if math.IsNaN(ms) {
		return Video{}, false
	}

	v := Video{
		VideoID:   r.VideoID,
		Title:     r.Title.String(),
		Seconds:   ms / 1000,
		Timestamp: timestamp,
		Views:     parseViews(r.ViewCountText.String()),
	}
	if r.OwnerText != nil && len(r.OwnerText.Runs) > 0 {
		owner := r.OwnerText.Runs[0]
		v.Author = Author{Name: owner.Text, URL: owner.NavigationEndpoint.CommandMetadata.WebCommandMetadata.URL}
	}
	return v, true
}

// parseViews reads the digits of a view count such as "1,234,567 views". Unparseable text counts as zero.
func parseViews(text string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
