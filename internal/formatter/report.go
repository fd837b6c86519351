package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/ytsrc/internal/models"
)

// ReportRow is one line of a bulk resolution report.
type ReportRow struct {
	Index      int                `json:"index"`
	Query      models.SearchQuery `json:"query"`
	Best       *models.Candidate  `json:"best,omitempty"`
	Candidates int                `json:"candidates"`
	Error      string             `json:"error,omitempty"`
}

func (r ReportRow) status() string {
	switch {
	case r.Error != "":
		return "failed"
	case r.Best == nil:
		return "unresolved"
	default:
		return "resolved"
	}
}

// ReportToCSV converts report rows to CSV with columns: Index, Artists, Track, Status, Source, VideoID, Title, Accuracy, Candidates, Error
func ReportToCSV(rows []ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Artists", "Track", "Status", "Source", "VideoID", "Title", "Accuracy", "Candidates", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range rows {
		var source, id, title, acc string
		if r.Best != nil {
			source, id, title = r.Best.Source, r.Best.VideoID, r.Best.Title
			acc = strconv.FormatFloat(r.Best.Accuracy, 'f', 4, 64)
		}
		record := []string{
			strconv.Itoa(r.Index),
			strings.Join(r.Query.Artists, ";"),
			r.Query.Track,
			r.status(),
			source,
			id,
			title,
			acc,
			strconv.Itoa(r.Candidates),
			r.Error,
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

// ReportToText renders report rows as a table followed by a one line summary.
func ReportToText(rows []ReportRow) string {
	counts := map[string]int{}
	t := newTable("#", "Track", "Status", "Best", "Accuracy", "ID")
	for _, r := range rows {
		status := r.status()
		counts[status]++

		var best, acc, id string
		switch {
		case r.Best != nil:
			best, acc, id = r.Best.Title, FormatAccuracy(r.Best.Accuracy), r.Best.VideoID
		case r.Error != "":
			best = r.Error
		}
		t.Row(strconv.Itoa(r.Index), r.Query.Text(), status, best, acc, id)
	}
	return fmt.Sprintf("%s\n%d resolved, %d unresolved, %d failed\n",
		t.String(), counts["resolved"], counts["unresolved"], counts["failed"])
}

// Report renders rows in format: json, csv or text (default).
func Report(rows []ReportRow, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ReportToCSV(rows)
	case "txt", "text":
		return []byte(ReportToText(rows)), nil
	default:
		return reportToJSON(rows)
	}
}

func reportToJSON(rows []ReportRow) ([]byte, error) {
	type jsonRow struct {
		ReportRow
		Best *jsonCandidate `json:"best,omitempty"`
	}
	out := make([]jsonRow, len(rows))
	for i, r := range rows {
		out[i] = jsonRow{ReportRow: r}
		if r.Best != nil {
			c := toJSONCandidate(*r.Best)
			out[i].Best = &c
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteReport renders rows in format and writes them to path. JSON is the default format.
func WriteReport(rows []ReportRow, format, path string) error {
	data, err := Report(rows, format)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return WriteFile(path, data)
}
