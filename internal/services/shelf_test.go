package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestParseShelves(t *testing.T) {
	t.Run("categorizes shelves by label", func(t *testing.T) {
		body := searchBody(
			musicShelf("Top result", []map[string]any{musicItem("top1", "Song A", "Song", "Artist", "Album", "3:20")}, "", false),
			musicShelf("Songs", []map[string]any{musicItem("s1", "Song B", "Song", "Artist", "Album", "3:00")}, "tok", true),
			musicShelf("Videos", []map[string]any{musicItem("v1", "Video A", "Video", "Artist", "1M views", "4:00")}, "", false),
			musicShelf("Albums", []map[string]any{musicItem("a1", "Album A", "Single", "Artist", "2019")}, "", false),
			musicShelf("Artists", []map[string]any{musicItem("ar1", "Artist A", "Artist", "2M subscribers")}, "", false),
			musicShelf("Playlists", []map[string]any{musicItem("p1", "Mix", "Playlist", "Someone", "40 songs")}, "", false),
			musicShelf("Podcasts", nil, "", false),
			map[string]any{"itemSectionRenderer": map[string]any{}},
		)

		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		for _, key := range []string{"top", "songs", "videos", "albums", "artists", "playlists", "other(Podcasts)", "other"} {
			if _, ok := shelves[key]; !ok {
				t.Errorf("expected shelf %q", key)
			}
		}

		want := models.Song{
			Title: "Song B", Artists: "Artist", Album: "Album", Duration: "3:00",
			Link: models.WatchLink{VideoID: "s1", PlaylistID: "RDs1"},
		}
		if diff := cmp.Diff([]models.Record{want}, shelves["songs"].Items); diff != "" {
			t.Errorf("songs mismatch (-want +got):\n%s", diff)
		}

		album, ok := shelves["albums"].Items[0].(models.Album)
		if !ok {
			t.Fatalf("expected Album, got %T", shelves["albums"].Items[0])
		}
		if album.AlbumType != "Single" || album.Year != "2019" || album.Link.PlaylistID != "PLa1" {
			t.Errorf("unexpected album %+v", album)
		}

		if got := shelves["other(Podcasts)"].Category; got != CategoryOther {
			t.Errorf("expected category other, got %s", got)
		}
	})

	t.Run("top result never carries cursors", func(t *testing.T) {
		body := searchBody(musicShelf("Top result", []map[string]any{musicItem("t", "T", "Song", "A", "B", "1:00")}, "tok", true))
		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		top := shelves["top"]
		if top.More != nil || top.Expand != nil {
			t.Errorf("expected no cursors on top, got more=%v expand=%v", top.More, top.Expand)
		}
	})

	t.Run("songs cursor overrides with singular label", func(t *testing.T) {
		body := searchBody(musicShelf("Songs", nil, "abc", true))
		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		more := shelves["songs"].More
		if more == nil {
			t.Fatal("expected continuation cursor")
		}
		if more.Override != "Song" || more.Continuation != "abc" || more.ClickTracking != "ct-abc" {
			t.Errorf("unexpected cursor %+v", more)
		}

		expand := shelves["songs"].Expand
		if expand == nil {
			t.Fatal("expected expand cursor")
		}
		var endpoint map[string]any
		if err := json.Unmarshal(expand.Endpoint, &endpoint); err != nil {
			t.Fatalf("expected endpoint json, got %v", err)
		}
		if endpoint["query"] != "expand Songs" || expand.Override != "Song" {
			t.Errorf("unexpected expand cursor %+v", expand)
		}
	})

	t.Run("inherited override wins over label", func(t *testing.T) {
		body := searchBody(musicShelf("Videos", nil, "abc", false))
		shelves, err := ParseShelves(mustJSON(t, body), "Song")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := shelves["videos"].More.Override; got != "Song" {
			t.Errorf("expected override Song, got %s", got)
		}
	})

	t.Run("continuation page uses override for every item", func(t *testing.T) {
		body := continuationBody(
			musicItem("c1", "Track One", "Artist", "Album", "3:01"),
			musicItem("c2", "Track Two", "Artist", "Album", "2:59"),
		)
		shelves, err := ParseShelves(mustJSON(t, body), "Song")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		other := shelves.Other()
		if len(other.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(other.Items))
		}
		song, ok := other.Items[1].(models.Song)
		if !ok {
			t.Fatalf("expected Song, got %T", other.Items[1])
		}
		if song.Title != "Track Two" || song.Artists != "Artist" || song.Duration != "2:59" {
			t.Errorf("unexpected song %+v", song)
		}
	})

	t.Run("unknown type keeps columns", func(t *testing.T) {
		body := searchBody(musicShelf("Songs", []map[string]any{musicItem("x", "Ep 1", "Episode", "Show")}, "", false))
		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := models.Other{Label: "Episode", Tags: []string{"Ep 1", "Show"}}
		if diff := cmp.Diff([]models.Record{want}, shelves["songs"].Items); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed items are skipped and recorded", func(t *testing.T) {
		noLink := musicItem("n", "Song C", "Song", "Artist", "Album", "3:00")
		delete(noLink["musicResponsiveListItemRenderer"].(map[string]any), "doubleTapCommand")

		body := searchBody(musicShelf("Songs", []map[string]any{
			{"musicTwoRowItemRenderer": map[string]any{}},
			noLink,
			musicItem("ok", "Song D", "Song", "Artist", "Album", "3:00"),
		}, "", false))

		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		songs := shelves["songs"]
		if len(songs.Items) != 1 || songs.Items[0].Name() != "Song D" {
			t.Errorf("expected only Song D, got %v", songs.Items)
		}
		if len(songs.Errors) != 2 {
			t.Fatalf("expected 2 item errors, got %d", len(songs.Errors))
		}
		var itemErr *ItemError
		if !errors.As(songs.Errors[1], &itemErr) || itemErr.Index != 1 {
			t.Errorf("expected ItemError at index 1, got %v", songs.Errors[1])
		}
	})

	t.Run("colliding keys merge items", func(t *testing.T) {
		body := searchBody(
			musicShelf("Songs", []map[string]any{musicItem("a", "A", "Song", "X", "Y", "1:00")}, "first", false),
			musicShelf("Songs", []map[string]any{musicItem("b", "B", "Song", "X", "Y", "1:00")}, "second", false),
		)
		shelves, err := ParseShelves(mustJSON(t, body), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n := len(shelves["songs"].Items); n != 2 {
			t.Errorf("expected 2 merged items, got %d", n)
		}
		if got := shelves["songs"].More.Continuation; got != "first" {
			t.Errorf("expected first shelf cursor, got %s", got)
		}
	})

	t.Run("rejects undecodable responses", func(t *testing.T) {
		if _, err := ParseShelves([]byte("{"), ""); err == nil {
			t.Error("expected error for invalid json")
		}
		if _, err := ParseShelves([]byte("{}"), ""); err == nil {
			t.Error("expected error for empty response")
		}
	})

	t.Run("missing shelves read as empty", func(t *testing.T) {
		shelves := Shelves{}
		if sh := shelves.Get(CategorySongs); len(sh.Items) != 0 || sh.Category != CategorySongs {
			t.Errorf("expected empty songs shelf, got %+v", sh)
		}
		if sh := shelves.Other(); sh.Category != CategoryOther {
			t.Errorf("expected other category, got %s", sh.Category)
		}
	})
}
