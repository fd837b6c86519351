package models

import (
	"context"
)

// FeedResolver fetches feed information for one candidate. It does no work until called and
// every call is a separate request.
type FeedResolver func(ctx context.Context) (*FeedInfo, error)

// Candidate is a ranked, playable search result.
type Candidate struct {
	Source     string   `json:"source"`
	Kind       Kind     `json:"-"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Artists    string   `json:"artists,omitempty"`
	Album      string   `json:"album,omitempty"`
	Views      string   `json:"views,omitempty"`
	ViewCount  int64    `json:"viewCount,omitempty"`
	Channel    string   `json:"channel,omitempty"`
	Duration   string   `json:"duration"`
	DurationMS float64  `json:"durationMs"`
	VideoID    string   `json:"videoId"`
	PlaylistID string   `json:"playlistId,omitempty"`
	Filters    []string `json:"filters,omitempty"`
	Accuracy   float64  `json:"accuracy"`

	GetFeeds FeedResolver `json:"-"`
}

// FeedInfo is the downloadable media description returned by the feed collaborator.
type FeedInfo struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Duration   float64  `json:"duration"`
	WebpageURL string   `json:"webpage_url"`
	Uploader   string   `json:"uploader,omitempty"`
	Formats    []Format `json:"formats"`
}

// Format is one downloadable stream of a [FeedInfo].
type Format struct {
	FormatID string  `json:"format_id"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	ACodec   string  `json:"acodec"`
	VCodec   string  `json:"vcodec"`
	ABR      float64 `json:"abr"`
	Filesize int64   `json:"filesize"`
	Protocol string  `json:"protocol"`
}

// AudioOnly reports whether the format carries audio and no video.
func (f Format) AudioOnly() bool {
	return f.ACodec != "" && f.ACodec != "none" && (f.VCodec == "" || f.VCodec == "none")
}

// BestAudio returns the audio-only format with the highest bitrate, or nil when there is none.
func (i *FeedInfo) BestAudio() *Format {
	var best *Format
	for idx := range i.Formats {
		f := &i.Formats[idx]
		if !f.AudioOnly() {
			continue
		}
		if best == nil || f.ABR > best.ABR {
			best = f
		}
	}
	return best
}
