package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/urfave/cli/v3"
)

// Feeds prints the downloadable formats of a video.
func (r *Runner) Feeds(ctx context.Context, cmd *cli.Command) error {
	if r.feeder == nil {
		return fmt.Errorf("%w: feed resolver not initialized", shared.ErrServiceUnavailable)
	}

	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving feeds", "id", id)

	info, err := services.NewFeedResolver(r.feeder, id)(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve feeds for %s: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(info, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.FeedInfoToText(info))
}
