// package tasks implements track resolution across search backends.
//
// The core abstraction is Resolver, which resolves one track or a list of tracks against every configured backend.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/ranking"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
)

// BackendResult is the outcome of one backend search for a track.
type BackendResult struct {
	Source     string
	Candidates []models.Candidate
	Err        error
}

// ResolveResult contains every backend outcome for one track.
type ResolveResult struct {
	Query    models.SearchQuery
	Backends []BackendResult
}

// Candidates merges the candidates of all successful backends, ordered by accuracy.
// A video found by more than one backend is kept once, from the first backend that returned it.
func (r *ResolveResult) Candidates() []models.Candidate {
	var all []models.Candidate
	for _, b := range r.Backends {
		if b.Err == nil {
			all = append(all, b.Candidates...)
		}
	}

	ranked := ranking.Rank(all,
		func(c models.Candidate) string { return c.VideoID },
		func(c models.Candidate) float64 { return c.Accuracy },
	)
	out := make([]models.Candidate, len(ranked))
	for i, rk := range ranked {
		out[i] = rk.Item
	}
	return out
}

// Best returns the highest ranked candidate, or nil when no backend found one.
func (r *ResolveResult) Best() *models.Candidate {
	c := r.Candidates()
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// Failed reports whether every backend failed.
func (r *ResolveResult) Failed() bool {
	for _, b := range r.Backends {
		if b.Err == nil {
			return false
		}
	}
	return len(r.Backends) > 0
}

// Resolver defines track resolution operations.
type Resolver interface {
	// Resolve searches every backend for q concurrently.
	Resolve(ctx context.Context, q models.SearchQuery, progress chan<- ProgressUpdate) (*ResolveResult, error)

	// BulkResolve resolves many tracks with a worker pool and a shared rate limit.
	BulkResolve(ctx context.Context, queries []models.SearchQuery, opts BulkResolveOpts, progress chan<- ProgressUpdate) (*BulkResolveResult, error)
}

// Engine implements Resolver over a fixed list of backends.
type Engine struct {
	backends []services.Service
	logger   *log.Logger
}

var _ Resolver = (*Engine)(nil)

// NewEngine creates a new Engine. Backends are reported and merged in the given order.
func NewEngine(logger *log.Logger, backends ...services.Service) *Engine {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Engine{backends: backends, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Resolve searches every backend for q. A failing backend is recorded in its [BackendResult];
// only an invalid query or an empty backend list is returned as an error.
func (e *Engine) Resolve(ctx context.Context, q models.SearchQuery, progress chan<- ProgressUpdate) (*ResolveResult, error) {
	if len(e.backends) == 0 {
		return nil, fmt.Errorf("%w: no search backends configured", shared.ErrServiceUnavailable)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	logger := shared.WithLogger(e.logger, "request_id", shared.GenerateID())
	logger.Debug("resolving track", "query", q.Text(), "duration_ms", q.DurationMS, "backends", len(e.backends))

	total := len(e.backends)
	tasks := make([]func(context.Context) ([]models.Candidate, error), total)
	for i, b := range e.backends {
		tasks[i] = func(ctx context.Context) ([]models.Candidate, error) {
			e.sendProgress(progress, searchBackendUpdate(i+1, total, b.Name(), q))
			return b.Search(ctx, q)
		}
	}

	result := &ResolveResult{Query: q, Backends: make([]BackendResult, total)}
	for i, r := range shared.Settle(ctx, total, tasks) {
		source := e.backends[i].Meta().ID
		result.Backends[i] = BackendResult{Source: source, Candidates: r.Value, Err: r.Err}
		if r.Err != nil {
			logger.Warn("backend search failed", "backend", source, "query", q.Text(), "error", r.Err)
			e.sendProgress(progress, backendFailedUpdate(i+1, total, e.backends[i].Name(), r.Err))
			continue
		}
		logger.Debug("backend search done", "backend", source, "candidates", len(r.Value))
		e.sendProgress(progress, backendDoneUpdate(i+1, total, e.backends[i].Name(), len(r.Value)))
	}
	return result, nil
}
