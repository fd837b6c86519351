package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/urfave/cli/v3"
)

// queryFromFlags builds and validates the track described by [trackFlags].
func queryFromFlags(cmd *cli.Command) (models.SearchQuery, error) {
	var artists []string
	for _, a := range cmd.StringSlice("artist") {
		artists = append(artists, formatter.SplitArtists(a)...)
	}

	ms, err := formatter.ParseTrackDuration(cmd.String("duration"))
	if err != nil {
		return models.SearchQuery{}, err
	}

	q := models.NewSearchQuery(artists, strings.TrimSpace(cmd.String("track")), ms)
	return q, q.Validate()
}

// SearchTrack ranks candidates for one track and prints them.
func (r *Runner) SearchTrack(ctx context.Context, cmd *cli.Command) error {
	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}
	engine, err := r.engineFor(cmd.String("backend"))
	if err != nil {
		return err
	}

	r.logger.Info("searching", "query", q.Text(), "duration_ms", q.DurationMS, "backend", cmd.String("backend"))

	result, err := engine.Resolve(ctx, q, nil)
	if err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("%w: every backend failed for %s", shared.ErrServiceUnavailable, q.Text())
	}

	cands := result.Candidates()
	if limit := cmd.Int("limit"); limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}

	data, err := formatter.Candidates(cands, cmd.String("format"))
	if err != nil {
		return fmt.Errorf("failed to format candidates: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteFile(path, data); err != nil {
			return err
		}
		r.logger.Info("candidates written", "path", path, "count", len(cands))
		return nil
	}
	return r.writeBytes(data)
}

// SearchShelves prints the raw YouTube Music shelves for a query, optionally following one shelf's cursors.
func (r *Runner) SearchShelves(ctx context.Context, cmd *cli.Command) error {
	if r.shelves == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching youtube music shelves", "query", query)

	shelves, err := r.shelves.Shelves(ctx, query)
	if err != nil {
		return err
	}
	r.writePlain("%s", formatter.ShelvesToText(shelves))

	follow := []struct {
		flag   string
		cursor func(*services.Shelf) *services.Cursor
	}{
		{"more", func(s *services.Shelf) *services.Cursor { return s.More }},
		{"expand", func(s *services.Shelf) *services.Cursor { return s.Expand }},
	}
	for _, f := range follow {
		key := cmd.String(f.flag)
		if key == "" {
			continue
		}
		shelf, ok := shelves[key]
		if !ok {
			return fmt.Errorf("%w: no %q shelf in the results", shared.ErrInvalidArgument, key)
		}
		cursor := f.cursor(shelf)
		if cursor == nil {
			return fmt.Errorf("%w: the %q shelf has no %s cursor", shared.ErrInvalidArgument, key, f.flag)
		}

		next, err := r.shelves.Next(ctx, cursor)
		if err != nil {
			return fmt.Errorf("failed to fetch %s of %q: %w", f.flag, key, err)
		}
		r.writePlainln("%s", formatter.ShelfToText(fmt.Sprintf("%s (%s)", key, f.flag), next))
	}
	return nil
}
