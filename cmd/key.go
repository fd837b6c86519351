package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/urfave/cli/v3"
)

// Key shows the YouTube Music api key, scraping it when nothing is cached.
//
// --refresh scrapes a new key and --clear drops the cached one.
func (r *Runner) Key(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("clear") {
		if r.keyCache == nil {
			return fmt.Errorf("%w: key cache not initialized", shared.ErrServiceUnavailable)
		}
		if err := r.keyCache.Clear(services.MusicMeta.ID); err != nil {
			return fmt.Errorf("failed to clear cached key: %w", err)
		}
		r.logger.Info("cleared cached api key", "service", services.MusicMeta.ID)
		return r.writePlain("✓ Cached key cleared\n")
	}

	if r.keys == nil {
		return fmt.Errorf("%w: key provider not initialized", shared.ErrServiceUnavailable)
	}

	refresh := cmd.Bool("refresh")
	key, err := r.keys.Key(ctx, refresh)
	if err != nil {
		return fmt.Errorf("failed to get api key: %w", err)
	}

	if !cmd.Bool("show") {
		key = maskKey(key)
	}
	if refresh {
		r.writePlain("✓ Key refreshed\n")
	}
	return r.writePlain("%s: %s\n", services.MusicMeta.Desc, key)
}

// maskKey keeps the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
