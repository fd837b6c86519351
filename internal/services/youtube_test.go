package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/ytsrc/internal/models"
	"go.uber.org/goleak"
)

// fakeSearcher answers by the keyword suffix of the query text.
type fakeSearcher struct {
	mu       sync.Mutex
	queries  []string
	results  map[string][]Video
	failures map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeSearcher) SearchVideos(ctx context.Context, s VideoSearch) (*VideoResults, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.queries = append(f.queries, s.Query)
	f.mu.Unlock()

	for suffix, err := range f.failures {
		if strings.HasSuffix(s.Query, suffix) {
			return nil, err
		}
	}
	for suffix, videos := range f.results {
		if strings.HasSuffix(s.Query, suffix) {
			return &VideoResults{Videos: videos}, nil
		}
	}
	return &VideoResults{}, nil
}

func video(id, title string, seconds float64, views int64, channel string) Video {
	return Video{VideoID: id, Title: title, Seconds: seconds, Views: views, Author: Author{Name: channel}}
}

func TestYouTubeService(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	query := models.NewSearchQuery([]string{"Artist"}, "Track", 200000)

	t.Run("Meta", func(t *testing.T) {
		svc := NewYouTubeService(YouTubeOpts{Searcher: &fakeSearcher{}})
		if svc.Name() != "YouTube" || svc.Meta().ID != "youtube" {
			t.Errorf("unexpected meta %+v", svc.Meta())
		}
	})

	t.Run("runs four sub-queries with at most three in flight", func(t *testing.T) {
		searcher := &fakeSearcher{delay: 20 * time.Millisecond}
		svc := NewYouTubeService(YouTubeOpts{Searcher: searcher, Feeder: &stubFeeder{}})

		if _, err := svc.Search(ctx, query); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(searcher.queries) != 4 {
			t.Fatalf("expected 4 sub-queries, got %d", len(searcher.queries))
		}
		if p := searcher.peak.Load(); p > 3 {
			t.Errorf("expected at most 3 concurrent searches, got %d", p)
		}
		for _, want := range []string{"Artist Track Official Audio", "Artist Track Audio", "Artist Track Lyrics", "Artist Track"} {
			found := false
			for _, q := range searcher.queries {
				found = found || q == want
			}
			if !found {
				t.Errorf("expected query %q in %v", want, searcher.queries)
			}
		}
	})

	t.Run("failed sub-queries contribute nothing", func(t *testing.T) {
		searcher := &fakeSearcher{
			results: map[string][]Video{
				"Official Audio": {video("a", "Artist - Track (Official Audio)", 200, 10, "Someone")},
				"Lyrics":         {video("b", "Artist - Track Lyrics", 200, 5, "Someone")},
			},
			failures: map[string]error{
				"Track Audio": errors.New("boom"),
				"Track":       errors.New("boom"),
			},
		}
		svc := NewYouTubeService(YouTubeOpts{Searcher: searcher, Feeder: &stubFeeder{}})

		got, err := svc.Search(ctx, query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].VideoID != "a" || got[1].VideoID != "b" {
			t.Fatalf("expected [a b], got %+v", got)
		}
		if f := got[0].Filters; len(f) != 1 || f[0] != "Official Audio" {
			t.Errorf("expected Official Audio filter, got %v", f)
		}
	})

	t.Run("all sub-queries failing yields empty result", func(t *testing.T) {
		searcher := &fakeSearcher{failures: map[string]error{"": errors.New("down")}}
		svc := NewYouTubeService(YouTubeOpts{Searcher: searcher, Feeder: &stubFeeder{}})

		got, err := svc.Search(ctx, query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no candidates, got %d", len(got))
		}
	})

	t.Run("filters titles and caps per query", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string][]Video{
			"Official Audio": {
				video("3d", "Artist - Track (8D Audio)", 200, 1, "x"),
				video("miss", "Other - Song", 200, 1, "x"),
				video("noartist", "Track cover", 200, 1, "x"),
				video("1", "ARTIST - track", 200, 1, "x"),
				video("2", "Artist Track 2", 200, 1, "x"),
				video("3", "Artist Track 3", 200, 1, "x"),
				video("4", "Artist Track 4", 200, 1, "x"),
				video("5", "Artist Track 5", 200, 1, "x"),
				video("6", "Artist Track 6", 200, 1, "x"),
			},
		}}
		svc := NewYouTubeService(YouTubeOpts{Searcher: searcher, Feeder: &stubFeeder{}})

		got, err := svc.Search(ctx, query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected 5 candidates, got %d", len(got))
		}
		for _, c := range got {
			if c.VideoID == "3d" || c.VideoID == "miss" || c.VideoID == "noartist" || c.VideoID == "6" {
				t.Errorf("unexpected candidate %s", c.VideoID)
			}
		}
	})

	t.Run("scores channel and view bonuses", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string][]Video{
			"Official Audio": {
				video("plain", "Artist - Track", 150, 10, "uploader"),
				video("channel", "Artist - Track (Audio)", 150, 10, "Artist - Topic"),
				video("top", "Artist - Track (Video)", 150, 1000, "uploader"),
			},
			"Lyrics": {
				video("channel", "Artist - Track (Audio)", 200, 10, "Artist - Topic"),
			},
		}}
		svc := NewYouTubeService(YouTubeOpts{Searcher: searcher, Feeder: &stubFeeder{}})

		got, err := svc.Search(ctx, query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 deduplicated candidates, got %d", len(got))
		}

		want := map[string]float64{"channel": 90, "top": 90, "plain": 75}
		for _, c := range got {
			if math.Abs(c.Accuracy-want[c.VideoID]) > 1e-9 {
				t.Errorf("%s: expected accuracy %v, got %v", c.VideoID, want[c.VideoID], c.Accuracy)
			}
			if c.GetFeeds == nil || c.Source != "youtube" {
				t.Errorf("%s: expected feed resolver and source", c.VideoID)
			}
		}
		if got[0].VideoID != "channel" || got[1].VideoID != "top" || got[2].VideoID != "plain" {
			t.Errorf("unexpected order %s %s %s", got[0].VideoID, got[1].VideoID, got[2].VideoID)
		}
		if got[0].DurationMS != 150000 {
			t.Errorf("expected first occurrence kept, got %v", got[0].DurationMS)
		}
	})

	t.Run("rejects invalid query", func(t *testing.T) {
		svc := NewYouTubeService(YouTubeOpts{Searcher: &fakeSearcher{}})
		if _, err := svc.Search(ctx, models.NewSearchQuery([]string{"A"}, "", 1000)); err == nil {
			t.Error("expected validation error")
		}
	})
}
