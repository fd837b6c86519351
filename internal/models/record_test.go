package models

import (
	"testing"
)

func TestNewRecord(t *testing.T) {
	watch := WatchLink{VideoID: "vid1", PlaylistID: "RDAMVM1"}
	list := PlaylistLink{PlaylistID: "OLAK5uy"}

	t.Run("Song uses positional columns and the watch link", func(t *testing.T) {
		rec := NewRecord("Song", []string{"Halo", "Beyoncé", "I Am... Sasha Fierce", "4:22"}, watch, list)
		song, ok := rec.(Song)
		if !ok {
			t.Fatalf("expected Song, got %T", rec)
		}
		if song.Title != "Halo" || song.Artists != "Beyoncé" || song.Album != "I Am... Sasha Fierce" || song.Duration != "4:22" {
			t.Errorf("unexpected song fields: %+v", song)
		}
		if song.Watch() != watch {
			t.Errorf("expected watch link %+v, got %+v", watch, song.Watch())
		}
	})

	t.Run("Video keeps views", func(t *testing.T) {
		rec := NewRecord("Video", []string{"Halo (Official Video)", "Beyoncé", "1.2B views", "3:45"}, watch, list)
		video, ok := rec.(Video)
		if !ok {
			t.Fatalf("expected Video, got %T", rec)
		}
		if video.Views != "1.2B views" || video.Length() != "3:45" {
			t.Errorf("unexpected video fields: %+v", video)
		}
	})

	t.Run("Single is classified as an album", func(t *testing.T) {
		rec := NewRecord("Single", []string{"Halo", "Beyoncé", "2008"}, watch, list)
		album, ok := rec.(Album)
		if !ok {
			t.Fatalf("expected Album, got %T", rec)
		}
		if album.AlbumType != "Single" || album.Year != "2008" || album.Link != list {
			t.Errorf("unexpected album fields: %+v", album)
		}
	})

	t.Run("missing columns are empty", func(t *testing.T) {
		rec := NewRecord("Artist", []string{"Beyoncé"}, watch, list)
		artist := rec.(Artist)
		if artist.Subscribers != "" {
			t.Errorf("expected empty subscribers, got %q", artist.Subscribers)
		}
	})

	t.Run("unknown label is Other", func(t *testing.T) {
		rec := NewRecord("Episode", []string{"Podcast", "Host"}, watch, list)
		if rec.Kind() != KindOther {
			t.Fatalf("expected KindOther, got %v", rec.Kind())
		}
		if rec.Name() != "Podcast" {
			t.Errorf("expected name Podcast, got %q", rec.Name())
		}
		if _, playable := rec.(Playable); playable {
			t.Error("Other must not be playable")
		}
	})
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"Song":     KindSong,
		"Video":    KindVideo,
		"Album":    KindAlbum,
		"EP":       KindAlbum,
		"Artist":   KindArtist,
		"Playlist": KindPlaylist,
		"":         KindOther,
		"songs":    KindOther,
	}
	for label, want := range tests {
		if got := ParseKind(label); got != want {
			t.Errorf("ParseKind(%q) = %v, want %v", label, got, want)
		}
	}
}
