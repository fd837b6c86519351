package models

// Kind discriminates the shapes a search result item can take.
type Kind int

const (
	KindOther Kind = iota
	KindSong
	KindVideo
	KindAlbum
	KindArtist
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindSong:
		return "Song"
	case KindVideo:
		return "Video"
	case KindAlbum:
		return "Album"
	case KindArtist:
		return "Artist"
	case KindPlaylist:
		return "Playlist"
	default:
		return "Other"
	}
}

// ParseKind maps a type label from a result row to a [Kind].
//
// "Single" and "EP" rows are albums; anything unknown is [KindOther].
func ParseKind(label string) Kind {
	switch label {
	case "Song":
		return KindSong
	case "Video":
		return KindVideo
	case "Album", "Single", "EP":
		return KindAlbum
	case "Artist":
		return KindArtist
	case "Playlist":
		return KindPlaylist
	default:
		return KindOther
	}
}

// Record is one item of a search shelf. The concrete type is one of
// [Song], [Video], [Album], [Artist], [Playlist] or [Other].
type Record interface {
	Kind() Kind
	Name() string
	record()
}

// Playable is a [Record] that can be streamed and therefore has a video id and a duration.
type Playable interface {
	Record
	Watch() WatchLink
	Length() string
}

// WatchLink identifies a playable item.
type WatchLink struct {
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId,omitempty"`
}

// PlaylistLink identifies a non playable item through the playlist that plays it.
type PlaylistLink struct {
	PlaylistID string `json:"playlistId"`
	Params     string `json:"params,omitempty"`
}

type Song struct {
	Title    string    `json:"title"`
	Artists  string    `json:"artists"`
	Album    string    `json:"album"`
	Duration string    `json:"duration"`
	Link     WatchLink `json:"link"`
}

type Video struct {
	Title    string    `json:"title"`
	Artists  string    `json:"artists"`
	Views    string    `json:"views"`
	Duration string    `json:"duration"`
	Link     WatchLink `json:"link"`
}

type Album struct {
	Title     string       `json:"name"`
	AlbumType string       `json:"albumType"`
	Artists   string       `json:"artists"`
	Year      string       `json:"year"`
	Link      PlaylistLink `json:"link"`
}

type Artist struct {
	Title       string       `json:"name"`
	Subscribers string       `json:"subscribers"`
	Link        PlaylistLink `json:"link"`
}

type Playlist struct {
	Title     string       `json:"name"`
	Author    string       `json:"author"`
	SongCount string       `json:"songCount"`
	Link      PlaylistLink `json:"link"`
}

// Other is an item whose type label is not recognised. Its text columns are kept as is.
type Other struct {
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
}

var (
	_ Playable = Song{}
	_ Playable = Video{}
	_ Record   = Album{}
	_ Record   = Artist{}
	_ Record   = Playlist{}
	_ Record   = Other{}
)

func (Song) Kind() Kind     { return KindSong }
func (Video) Kind() Kind    { return KindVideo }
func (Album) Kind() Kind    { return KindAlbum }
func (Artist) Kind() Kind   { return KindArtist }
func (Playlist) Kind() Kind { return KindPlaylist }
func (Other) Kind() Kind    { return KindOther }

func (s Song) Name() string     { return s.Title }
func (v Video) Name() string    { return v.Title }
func (a Album) Name() string    { return a.Title }
func (a Artist) Name() string   { return a.Title }
func (p Playlist) Name() string { return p.Title }
func (o Other) Name() string {
	if len(o.Tags) > 0 {
		return o.Tags[0]
	}
	return ""
}

func (Song) record()     {}
func (Video) record()    {}
func (Album) record()    {}
func (Artist) record()   {}
func (Playlist) record() {}
func (Other) record()    {}

func (s Song) Watch() WatchLink  { return s.Link }
func (v Video) Watch() WatchLink { return v.Link }
func (s Song) Length() string    { return s.Duration }
func (v Video) Length() string   { return v.Duration }

// NewRecord builds the record for label from positional text columns.
//
// Columns beyond the ones a kind uses are ignored and missing ones are left empty.
// watch is used by playable kinds, list by the others.
func NewRecord(label string, tags []string, watch WatchLink, list PlaylistLink) Record {
	tag := func(i int) string {
		if i < len(tags) {
			return tags[i]
		}
		return ""
	}

	switch ParseKind(label) {
	case KindSong:
		return Song{Title: tag(0), Artists: tag(1), Album: tag(2), Duration: tag(3), Link: watch}
	case KindVideo:
		return Video{Title: tag(0), Artists: tag(1), Views: tag(2), Duration: tag(3), Link: watch}
	case KindAlbum:
		return Album{Title: tag(0), AlbumType: label, Artists: tag(1), Year: tag(2), Link: list}
	case KindArtist:
		return Artist{Title: tag(0), Subscribers: tag(1), Link: list}
	case KindPlaylist:
		return Playlist{Title: tag(0), Author: tag(1), SongCount: tag(2), Link: list}
	default:
		return Other{Label: label, Tags: append([]string(nil), tags...)}
	}
}
