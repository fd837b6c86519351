package tasks

import (
	"fmt"

	"github.com/desertthunder/ytsrc/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchBackend Phase = iota
	ResolveTrack
	WriteReport
)

func (p Phase) String() string {
	switch p {
	case SearchBackend:
		return "search_backend"
	case ResolveTrack:
		return "resolve_track"
	case WriteReport:
		return "write_report"
	default:
		return ""
	}
}

func searchBackendUpdate(step, total int, backend string, q models.SearchQuery) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchBackend,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching %s for %s...", backend, q.Text()),
	}
}

func backendDoneUpdate(step, total int, backend string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchBackend,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("%s: %d candidates", backend, count),
		Data:    count,
	}
}

func backendFailedUpdate(step, total int, backend string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchBackend,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("%s failed: %v", backend, err),
		Data:    err,
	}
}

func trackResolvedUpdate(step, total int, res TrackResult) ProgressUpdate {
	if res.Err != nil {
		return ProgressUpdate{
			Phase:   ResolveTrack,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Query.Text(), res.Err),
			Data:    res,
		}
	}
	if res.Best == nil {
		return ProgressUpdate{
			Phase:   ResolveTrack,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ? %s: no candidates", step, total, res.Query.Text()),
			Data:    res,
		}
	}
	return ProgressUpdate{
		Phase:   ResolveTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s (%.1f%%)", step, total, res.Query.Text(), res.Best.Title, res.Best.Accuracy),
		Data:    res,
	}
}

func writeReportUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing report to %s...", path),
	}
}
