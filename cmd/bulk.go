package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/desertthunder/ytsrc/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Bulk resolves every track of a CSV file and prints a summary.
func (r *Runner) Bulk(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.StringArg("file"))
	if path == "" {
		return fmt.Errorf("%w: CSV file is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	queries, err := formatter.ReadQueriesCSV(f)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("%w: %s contains no tracks", shared.ErrInvalidInput, path)
	}

	engine, err := r.engineFor(cmd.String("backend"))
	if err != nil {
		return err
	}

	opts := tasks.BulkResolveOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Format:     cmd.String("format"),
		ReportPath: cmd.String("report"),
	}

	r.logger.Info("starting bulk resolve", "file", path, "tracks", len(queries), "workers", opts.NumWorkers)
	r.writePlain("Resolving %d tracks from %s...\n\n", len(queries), path)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ResolveTrack:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteReport:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkResolve(ctx, queries, opts, progressCh)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Bulk Resolve Complete!")
	r.writePlain("Resolved: %d/%d\n", result.Resolved, result.Total)
	r.writePlain("Unresolved: %d\n", result.Unresolved)
	r.writePlain("Failed: %d\n", result.Failed)
	if result.ReportPath != "" {
		r.writePlain("Report: %s\n", result.ReportPath)
	}

	if result.Unresolved+result.Failed > 0 {
		r.writePlain("\nTracks without a match:\n")
		for _, res := range result.Results {
			switch {
			case res.Err != nil:
				r.writePlain("  - %s (%v)\n", res.Query.Text(), res.Err)
			case res.Best == nil:
				r.writePlain("  - %s\n", res.Query.Text())
			}
		}
	}

	return err
}
