package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/models"
)

var _ list.Item = candidateItem{}

// candidateItem wraps [models.Candidate] to implement [list.Item].
type candidateItem struct {
	rank      int
	candidate models.Candidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string {
	acc := accuracyStyle(i.candidate.Accuracy).Render(formatter.FormatAccuracy(i.candidate.Accuracy))
	return fmt.Sprintf("%d. %s %s", i.rank, i.candidate.Title, acc)
}
func (i candidateItem) Description() string {
	parts := []string{i.candidate.Source, i.candidate.Type}
	if who := i.candidate.Artists; who != "" {
		parts = append(parts, who)
	} else if i.candidate.Channel != "" {
		parts = append(parts, i.candidate.Channel)
	}
	if i.candidate.Duration != "" {
		parts = append(parts, i.candidate.Duration)
	}
	if views := formatter.FormatViews(i.candidate); views != "" {
		parts = append(parts, views)
	}
	return strings.Join(parts, " • ")
}

func candidateItems(cands []models.Candidate) []list.Item {
	items := make([]list.Item, len(cands))
	for i, c := range cands {
		items[i] = candidateItem{rank: i + 1, candidate: c}
	}
	return items
}
