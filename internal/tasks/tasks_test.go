package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
	mocks "github.com/desertthunder/ytsrc/internal/testing"
)

func TestEngineResolve(t *testing.T) {
	ctx := context.Background()
	q := models.NewSearchQuery([]string{"Artist"}, "Track", 200000)
	feeder := &mocks.MockFeeder{}

	t.Run("merges backends by accuracy", func(t *testing.T) {
		music := &mocks.MockService{ID: "yt_music", Results: map[string][]models.Candidate{
			"Artist Track": {
				mocks.Candidate("yt_music", "a", "A", 95, feeder),
				mocks.Candidate("yt_music", "shared", "Shared", 80, feeder),
			},
		}}
		video := &mocks.MockService{ID: "youtube", Results: map[string][]models.Candidate{
			"Artist Track": {
				mocks.Candidate("youtube", "b", "B", 97, feeder),
				mocks.Candidate("youtube", "shared", "Shared again", 99, feeder),
			},
		}}
		engine := NewEngine(nil, music, video)

		progress := make(chan ProgressUpdate, 10)
		res, err := engine.Resolve(ctx, q, progress)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Backends) != 2 || res.Backends[0].Source != "yt_music" || res.Backends[1].Source != "youtube" {
			t.Fatalf("unexpected backends %+v", res.Backends)
		}

		got := res.Candidates()
		wantIDs := []string{"b", "a", "shared"}
		if len(got) != len(wantIDs) {
			t.Fatalf("expected %d candidates, got %d", len(wantIDs), len(got))
		}
		for i, id := range wantIDs {
			if got[i].VideoID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, got[i].VideoID)
			}
		}
		if got[2].Source != "yt_music" {
			t.Errorf("expected first backend to win the duplicate, got %s", got[2].Source)
		}
		if best := res.Best(); best == nil || best.VideoID != "b" {
			t.Errorf("expected best b, got %+v", best)
		}
		if feeder.Calls() != 0 {
			t.Errorf("expected feeds untouched, got %d calls", feeder.Calls())
		}

		close(progress)
		var phases []Phase
		for u := range progress {
			phases = append(phases, u.Phase)
		}
		if len(phases) != 4 {
			t.Errorf("expected 4 progress updates, got %d", len(phases))
		}
	})

	t.Run("records backend failures", func(t *testing.T) {
		music := &mocks.MockService{ID: "yt_music", Err: &shared.TransportError{Message: "down"}}
		video := &mocks.MockService{ID: "youtube", Results: map[string][]models.Candidate{
			"Artist Track": {mocks.Candidate("youtube", "b", "B", 90, feeder)},
		}}
		engine := NewEngine(nil, music, video)

		res, err := engine.Resolve(ctx, q, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !errors.Is(res.Backends[0].Err, shared.ErrAPIRequest) {
			t.Errorf("expected transport error on music backend, got %v", res.Backends[0].Err)
		}
		if res.Failed() {
			t.Error("expected partial success")
		}
		if len(res.Candidates()) != 1 {
			t.Errorf("expected 1 candidate, got %d", len(res.Candidates()))
		}
	})

	t.Run("all backends failing", func(t *testing.T) {
		engine := NewEngine(nil, &mocks.MockService{Err: errors.New("x")})
		res, err := engine.Resolve(ctx, q, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Failed() || res.Best() != nil {
			t.Errorf("expected failed result, got %+v", res)
		}
	})

	t.Run("validates query", func(t *testing.T) {
		engine := NewEngine(nil, &mocks.MockService{})
		_, err := engine.Resolve(ctx, models.NewSearchQuery([]string{"A"}, "T", 0), nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("requires backends", func(t *testing.T) {
		_, err := NewEngine(nil).Resolve(ctx, q, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		engine := NewEngine(nil, &mocks.MockService{}, &mocks.MockService{})
		progress := make(chan ProgressUpdate)
		if _, err := engine.Resolve(ctx, q, progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		SearchBackend: "search_backend",
		ResolveTrack:  "resolve_track",
		WriteReport:   "write_report",
		Phase(99):     "",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
