package models

import (
	"errors"
	"math"
	"testing"

	"github.com/desertthunder/ytsrc/internal/shared"
)

func TestSearchQuery(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			query   SearchQuery
			wantErr bool
		}{
			{name: "valid", query: NewSearchQuery([]string{"Daft Punk"}, "Get Lucky", 248000)},
			{name: "no artists", query: NewSearchQuery(nil, "Get Lucky", 248000), wantErr: true},
			{name: "blank artist", query: NewSearchQuery([]string{"Daft Punk", " "}, "Get Lucky", 248000), wantErr: true},
			{name: "blank track", query: NewSearchQuery([]string{"Daft Punk"}, "", 248000), wantErr: true},
			{name: "zero duration", query: NewSearchQuery([]string{"Daft Punk"}, "Get Lucky", 0), wantErr: true},
			{name: "NaN duration", query: NewSearchQuery([]string{"Daft Punk"}, "Get Lucky", math.NaN()), wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.query.Validate()
				if (err != nil) != tt.wantErr {
					t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
				if err != nil && !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})

	t.Run("Text", func(t *testing.T) {
		q := NewSearchQuery([]string{"Daft Punk", "Pharrell Williams"}, "Get Lucky", 248000)
		if got := q.Text(); got != "Daft Punk Pharrell Williams Get Lucky" {
			t.Errorf("unexpected text %q", got)
		}
		if got := q.Text("Official", "Audio"); got != "Daft Punk Pharrell Williams Get Lucky Official Audio" {
			t.Errorf("unexpected text with filters %q", got)
		}
	})

	t.Run("NewSearchQuery copies artists", func(t *testing.T) {
		artists := []string{"Daft Punk"}
		q := NewSearchQuery(artists, "Get Lucky", 248000)
		artists[0] = "changed"
		if q.Artists[0] != "Daft Punk" {
			t.Errorf("query artists changed with caller slice: %v", q.Artists)
		}
	})
}

func TestFeedInfoBestAudio(t *testing.T) {
	info := &FeedInfo{Formats: []Format{
		{FormatID: "18", ACodec: "mp4a.40.2", VCodec: "avc1", ABR: 96},
		{FormatID: "140", ACodec: "mp4a.40.2", VCodec: "none", ABR: 129.5},
		{FormatID: "251", ACodec: "opus", VCodec: "none", ABR: 160},
		{FormatID: "137", ACodec: "none", VCodec: "avc1"},
	}}

	best := info.BestAudio()
	if best == nil || best.FormatID != "251" {
		t.Fatalf("expected format 251, got %+v", best)
	}

	if (&FeedInfo{}).BestAudio() != nil {
		t.Error("expected nil for feed without formats")
	}
}
