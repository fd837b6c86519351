package formatter

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/services"
	th "github.com/desertthunder/ytsrc/internal/testing"
)

func sampleCandidates() []models.Candidate {
	return []models.Candidate{
		{
			Source: "yt_music", Kind: models.KindSong, Type: "Song", Title: "Song One", Artists: "Artist One",
			Album: "Album One", Duration: "3:20", DurationMS: 200000, VideoID: "vid1", PlaylistID: "RDvid1", Accuracy: 100,
		},
		{
			Source: "youtube", Kind: models.KindVideo, Type: "Video", Title: "Song One (Lyrics)", Channel: "Lyrics Hub",
			ViewCount: 1234567, Duration: "3:25", DurationMS: 205000, VideoID: "vid2", Filters: []string{"Lyrics"}, Accuracy: math.NaN(),
		},
	}
}

func TestCandidates(t *testing.T) {
	t.Run("CandidatesToCSV", func(t *testing.T) {
		data, err := CandidatesToCSV(sampleCandidates())
		if err != nil {
			t.Fatalf("CandidatesToCSV failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "Rank,Source,Type,Title,Artists,Album,Channel,Duration,DurationMS,Views,VideoID,PlaylistID,Filters,Accuracy\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,yt_music,Song,Song One,Artist One,Album One,,3:20,200000,,vid1,RDvid1,,100.0000") {
			t.Errorf("CSV missing first row, got: %s", output)
		}
		if !strings.Contains(output, "1234567,vid2,,Lyrics,NaN") {
			t.Errorf("CSV missing second row, got: %s", output)
		}
	})

	t.Run("CandidatesToJSON", func(t *testing.T) {
		data, err := CandidatesToJSON(sampleCandidates())
		if err != nil {
			t.Fatalf("CandidatesToJSON failed: %v", err)
		}

		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0]["accuracy"] != 100.0 || rows[0]["videoId"] != "vid1" {
			t.Errorf("unexpected first row %v", rows[0])
		}
		if rows[1]["accuracy"] != nil {
			t.Errorf("expected null accuracy for NaN, got %v", rows[1]["accuracy"])
		}
		if _, ok := rows[0]["GetFeeds"]; ok {
			t.Error("feed resolver should not be serialized")
		}
	})

	t.Run("CandidatesToText", func(t *testing.T) {
		output := CandidatesToText(sampleCandidates())
		for _, want := range []string{"Song One", "Artist One", "Lyrics Hub", "1,234,567", "100.0%", "n/a", "vid2"} {
			if !strings.Contains(output, want) {
				t.Errorf("text output missing %q:\n%s", want, output)
			}
		}
		if got := CandidatesToText(nil); got != "No candidates found.\n" {
			t.Errorf("unexpected empty output %q", got)
		}
	})

	t.Run("Candidates dispatches on format", func(t *testing.T) {
		for format, want := range map[string]string{"json": `"videoId": "vid1"`, "csv": "Rank,Source", "": "Song One"} {
			data, err := Candidates(sampleCandidates()[:1], format)
			if err != nil {
				t.Fatalf("format %q failed: %v", format, err)
			}
			if !strings.Contains(string(data), want) {
				t.Errorf("format %q: expected %q in %s", format, want, data)
			}
		}
	})
}

func TestShelvesToText(t *testing.T) {
	shelves := services.Shelves{
		"songs": {
			Category: "songs",
			Label:    "Songs",
			Items: []models.Record{
				models.Song{Title: "Song One", Artists: "Artist", Album: "Album", Duration: "3:20", Link: models.WatchLink{VideoID: "s1"}},
			},
			Errors: []error{&services.ItemError{Index: 1, Reason: "no flex columns"}},
			More:   &services.Cursor{Override: "Song", Continuation: "tok"},
		},
		"top": {
			Category: "top",
			Label:    "Top result",
			Items:    []models.Record{models.Artist{Title: "Artist", Subscribers: "1M", Link: models.PlaylistLink{PlaylistID: "PL1"}}},
		},
	}

	output := ShelvesToText(shelves)
	if !strings.HasPrefix(output, "top (1)") {
		t.Errorf("expected top first, got:\n%s", output)
	}
	for _, want := range []string{"songs (1) [more]", "Artist · Album · 3:20", "PL1", "skipped: item 1: no flex columns"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestFeedInfoToText(t *testing.T) {
	info := &models.FeedInfo{
		ID:    "abc",
		Title: "Track",
		Formats: []models.Format{
			{FormatID: "18", Ext: "mp4", ACodec: "mp4a", VCodec: "avc1", ABR: 96},
			{FormatID: "140", Ext: "m4a", ACodec: "mp4a", VCodec: "none", ABR: 129, Filesize: 3_400_000},
			{FormatID: "251", Ext: "webm", ACodec: "opus", VCodec: "none", ABR: 160},
		},
	}
	output := FeedInfoToText(info)

	if strings.Index(output, "251") > strings.Index(output, "18 ") {
		t.Errorf("expected audio formats first:\n%s", output)
	}
	for _, want := range []string{"Track (abc)", "160k", "3.4 MB", "*"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if out := FeedInfoToText(&models.FeedInfo{ID: "x"}); !strings.Contains(out, "No formats available.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestReport(t *testing.T) {
	best := sampleCandidates()[0]
	rows := []ReportRow{
		{Index: 1, Query: models.NewSearchQuery([]string{"A", "B"}, "One", 1000), Best: &best, Candidates: 3},
		{Index: 2, Query: models.NewSearchQuery([]string{"C"}, "Two", 1000)},
		{Index: 3, Query: models.NewSearchQuery([]string{"D"}, "Three", 1000), Error: "backend down"},
	}

	t.Run("csv", func(t *testing.T) {
		data, err := ReportToCSV(rows)
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}
		output := string(data)
		for _, want := range []string{
			"1,A;B,One,resolved,yt_music,vid1,Song One,100.0000,3,",
			"2,C,Two,unresolved,,,,,0,",
			"3,D,Three,failed,,,,,0,backend down",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("CSV missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("text", func(t *testing.T) {
		output := ReportToText(rows)
		if !strings.Contains(output, "1 resolved, 1 unresolved, 1 failed") {
			t.Errorf("missing summary:\n%s", output)
		}
	})

	t.Run("json handles NaN", func(t *testing.T) {
		nan := sampleCandidates()[1]
		data, err := Report([]ReportRow{{Index: 1, Best: &nan}}, "json")
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if !strings.Contains(string(data), `"accuracy": null`) {
			t.Errorf("expected null accuracy, got %s", data)
		}
	})

	t.Run("WriteReport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		if err := WriteReport(rows, "csv", path); err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "Index,") {
			t.Errorf("unexpected report %q", content)
		}

		if err := WriteReport(rows, "csv", filepath.Join(t.TempDir(), "missing", "report.csv")); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}
