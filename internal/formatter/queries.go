package formatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
)

// ParseTrackDuration reads "M:SS" / "H:MM:SS" durations or a plain number of milliseconds.
func ParseTrackDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		ms := models.ParseDuration(s)
		if math.IsNaN(ms) {
			return 0, &shared.ValidationError{Field: "duration", Reason: fmt.Sprintf("%q is not a duration", s)}
		}
		return ms, nil
	}
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &shared.ValidationError{Field: "duration", Reason: fmt.Sprintf("%q is not a number of milliseconds", s)}
	}
	return ms, nil
}

// SplitArtists splits a list of artist names on ";" and drops blanks.
func SplitArtists(s string) []string {
	var artists []string
	for _, a := range strings.Split(s, ";") {
		if a = strings.TrimSpace(a); a != "" {
			artists = append(artists, a)
		}
	}
	return artists
}

// ReadQueriesCSV reads tracks from CSV rows of artists, track and duration.
//
// Artists are separated by ";". A first row whose duration column is "duration" is treated as a header.
// Blank lines are skipped; every other malformed row fails the whole read with its line number.
func ReadQueriesCSV(r io.Reader) ([]models.SearchQuery, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var queries []models.SearchQuery
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[2]), "duration") {
			continue
		}

		ms, err := ParseTrackDuration(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		q := models.NewSearchQuery(SplitArtists(record[0]), strings.TrimSpace(record[1]), ms)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}
