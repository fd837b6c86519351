// package formatter renders candidates, shelves, feeds and bulk reports as text tables, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// FormatAccuracy renders an accuracy score with one decimal, "n/a" when it could not be computed.
func FormatAccuracy(acc float64) string {
	if math.IsNaN(acc) {
		return "n/a"
	}
	return strconv.FormatFloat(acc, 'f', 1, 64) + "%"
}

// FormatViews renders a candidate's views, preferring the parsed count.
func FormatViews(c models.Candidate) string {
	if c.ViewCount > 0 {
		return humanize.Comma(c.ViewCount)
	}
	return c.Views
}

func artistsOrChannel(c models.Candidate) string {
	if c.Artists != "" {
		return c.Artists
	}
	return c.Channel
}

// CandidatesToText renders candidates as a table in rank order.
func CandidatesToText(cands []models.Candidate) string {
	if len(cands) == 0 {
		return "No candidates found.\n"
	}

	t := newTable("#", "Source", "Type", "Title", "Artists / Channel", "Duration", "Views", "Accuracy", "ID")
	for i, c := range cands {
		t.Row(
			strconv.Itoa(i+1),
			c.Source,
			c.Type,
			c.Title,
			artistsOrChannel(c),
			c.Duration,
			FormatViews(c),
			FormatAccuracy(c.Accuracy),
			c.VideoID,
		)
	}
	return t.String() + "\n"
}

// CandidatesToCSV converts candidates to CSV with columns: Rank, Source, Type, Title, Artists, Album, Channel, Duration, DurationMS, Views, VideoID, PlaylistID, Filters, Accuracy
func CandidatesToCSV(cands []models.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Source", "Type", "Title", "Artists", "Album", "Channel", "Duration", "DurationMS", "Views", "VideoID", "PlaylistID", "Filters", "Accuracy"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, c := range cands {
		views := c.Views
		if c.ViewCount > 0 {
			views = strconv.FormatInt(c.ViewCount, 10)
		}
		record := []string{
			strconv.Itoa(i + 1),
			c.Source,
			c.Type,
			c.Title,
			c.Artists,
			c.Album,
			c.Channel,
			c.Duration,
			strconv.FormatFloat(c.DurationMS, 'f', -1, 64),
			views,
			c.VideoID,
			c.PlaylistID,
			strings.Join(c.Filters, ";"),
			strconv.FormatFloat(c.Accuracy, 'f', 4, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// jsonCandidate writes a NaN or infinite accuracy as null, which encoding/json cannot represent.
type jsonCandidate struct {
	models.Candidate
	Accuracy *float64 `json:"accuracy"`
}

func toJSONCandidate(c models.Candidate) jsonCandidate {
	out := jsonCandidate{Candidate: c}
	if !math.IsNaN(c.Accuracy) && !math.IsInf(c.Accuracy, 0) {
		acc := c.Accuracy
		out.Accuracy = &acc
	}
	return out
}

// CandidatesToJSON converts candidates to indented JSON. NaN accuracies are written as null.
func CandidatesToJSON(cands []models.Candidate) ([]byte, error) {
	rows := make([]jsonCandidate, len(cands))
	for i, c := range cands {
		rows[i] = toJSONCandidate(c)
	}
	return json.MarshalIndent(rows, "", "  ")
}

// Candidates renders cands in format: json, csv or text (default).
func Candidates(cands []models.Candidate, format string) ([]byte, error) {
	switch format {
	case "json":
		return CandidatesToJSON(cands)
	case "csv":
		return CandidatesToCSV(cands)
	default:
		return []byte(CandidatesToText(cands)), nil
	}
}

func recordColumns(rec models.Record) (title, detail, link string) {
	switch r := rec.(type) {
	case models.Song:
		return r.Title, strings.Join([]string{r.Artists, r.Album, r.Duration}, " · "), r.Link.VideoID
	case models.Video:
		return r.Title, strings.Join([]string{r.Artists, r.Views, r.Duration}, " · "), r.Link.VideoID
	case models.Album:
		return r.Title, strings.Join([]string{r.AlbumType, r.Artists, r.Year}, " · "), r.Link.PlaylistID
	case models.Artist:
		return r.Title, r.Subscribers, r.Link.PlaylistID
	case models.Playlist:
		return r.Title, strings.Join([]string{r.Author, r.SongCount}, " · "), r.Link.PlaylistID
	case models.Other:
		return r.Name(), strings.Join(r.Tags, " · "), ""
	default:
		return "", "", ""
	}
}

// ShelfToText renders one shelf as a table headed by its label.
func ShelfToText(key string, shelf *services.Shelf) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)", key, len(shelf.Items))
	if shelf.More != nil {
		b.WriteString(" [more]")
	}
	if shelf.Expand != nil {
		b.WriteString(" [expand]")
	}
	b.WriteString("\n")

	if len(shelf.Items) > 0 {
		t := newTable("#", "Kind", "Name", "Details", "Link")
		for i, rec := range shelf.Items {
			title, detail, link := recordColumns(rec)
			t.Row(strconv.Itoa(i+1), rec.Kind().String(), title, detail, link)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	for _, err := range shelf.Errors {
		fmt.Fprintf(&b, "  skipped: %v\n", err)
	}
	return b.String()
}

// ShelvesToText renders every shelf, "top" first and the rest by key.
func ShelvesToText(shelves services.Shelves) string {
	keys := make([]string, 0, len(shelves))
	for k := range shelves {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == services.CategoryTop) != (keys[j] == services.CategoryTop) {
			return keys[i] == services.CategoryTop
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ShelfToText(k, shelves[k]))
	}
	return b.String()
}

// FeedInfoToText renders the formats of info, audio-only formats first, marking the best one.
func FeedInfoToText(info *models.FeedInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", info.Title, info.ID)
	if info.WebpageURL != "" {
		fmt.Fprintf(&b, "%s\n", info.WebpageURL)
	}

	if len(info.Formats) == 0 {
		b.WriteString("No formats available.\n")
		return b.String()
	}

	formats := append([]models.Format(nil), info.Formats...)
	sort.SliceStable(formats, func(i, j int) bool {
		if formats[i].AudioOnly() != formats[j].AudioOnly() {
			return formats[i].AudioOnly()
		}
		return formats[i].ABR > formats[j].ABR
	})

	best := info.BestAudio()
	t := newTable("", "Format", "Ext", "Audio", "Video", "Bitrate", "Size")
	for _, f := range formats {
		mark := ""
		if best != nil && f.FormatID == best.FormatID {
			mark = "*"
		}
		size := ""
		if f.Filesize > 0 {
			size = humanize.Bytes(uint64(f.Filesize))
		}
		bitrate := ""
		if f.ABR > 0 {
			bitrate = fmt.Sprintf("%.0fk", f.ABR)
		}
		t.Row(mark, f.FormatID, f.Ext, f.ACodec, f.VCodec, bitrate, size)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
