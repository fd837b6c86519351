package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
	"golang.org/x/time/rate"
)

// BulkResolveOpts contains configuration for bulk track resolution.
type BulkResolveOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Tracks started per second (default: 2)
	Format     string  // Report format: json, csv, txt
	ReportPath string  // Report file, skipped when empty
}

// TrackResult is the outcome of resolving one track of a bulk run.
type TrackResult struct {
	Index  int
	Query  models.SearchQuery
	Result *ResolveResult
	Best   *models.Candidate
	Err    error
}

// BulkResolveResult summarizes a bulk run. Results are in input order.
type BulkResolveResult struct {
	Total      int
	Resolved   int
	Unresolved int
	Failed     int
	Results    []TrackResult
	ReportPath string
}

type resolveJob struct {
	index int
	query models.SearchQuery
}

// BulkResolve resolves queries with a worker pool. Starts are paced by a shared rate limiter
// so that large lists do not hammer the backends. A track whose every backend fails counts as failed;
// a track with no candidates counts as unresolved.
func (e *Engine) BulkResolve(
	ctx context.Context,
	queries []models.SearchQuery,
	opts BulkResolveOpts,
	progress chan<- ProgressUpdate,
) (*BulkResolveResult, error) {
	if len(e.backends) == 0 {
		return nil, fmt.Errorf("%w: no search backends configured", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan resolveJob, len(queries))
	results := make(chan TrackResult, len(queries))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.resolveWorker(ctx, &wg, limiter, jobs, results)
	}

	for i, q := range queries {
		jobs <- resolveJob{index: i, query: q}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &BulkResolveResult{Total: len(queries), Results: make([]TrackResult, 0, len(queries))}
	completed := 0
	for res := range results {
		completed++
		summary.Results = append(summary.Results, res)
		switch {
		case res.Err != nil:
			summary.Failed++
		case res.Best == nil:
			summary.Unresolved++
		default:
			summary.Resolved++
		}
		e.sendProgress(progress, trackResolvedUpdate(completed, len(queries), res))
	}
	sort.Slice(summary.Results, func(i, j int) bool { return summary.Results[i].Index < summary.Results[j].Index })

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("bulk resolve interrupted after %d of %d tracks: %w", completed, len(queries), err)
	}

	if opts.ReportPath != "" {
		e.sendProgress(progress, writeReportUpdate(opts.ReportPath))
		if err := formatter.WriteReport(reportRows(summary.Results), opts.Format, opts.ReportPath); err != nil {
			return summary, fmt.Errorf("resolve completed but failed to write report: %w", err)
		}
		summary.ReportPath = opts.ReportPath
	}
	return summary, nil
}

// resolveWorker resolves jobs until the channel is drained or ctx is done.
func (e *Engine) resolveWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan resolveJob,
	results chan<- TrackResult,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		res := TrackResult{Index: job.index, Query: job.query}
		resolved, err := e.Resolve(ctx, job.query, nil)
		switch {
		case err != nil:
			res.Err = err
		case resolved.Failed():
			res.Result = resolved
			res.Err = fmt.Errorf("%w: every backend failed", shared.ErrServiceUnavailable)
		default:
			res.Result = resolved
			res.Best = resolved.Best()
		}
		results <- res
	}
}

func reportRows(results []TrackResult) []formatter.ReportRow {
	rows := make([]formatter.ReportRow, len(results))
	for i, r := range results {
		row := formatter.ReportRow{Index: r.Index + 1, Query: r.Query, Best: r.Best}
		if r.Result != nil {
			row.Candidates = len(r.Result.Candidates())
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows[i] = row
	}
	return rows
}
