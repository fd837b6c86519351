package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/desertthunder/ytsrc/internal/ui"
	"github.com/urfave/cli/v3"
)

// Pick launches the interactive candidate picker and prints the chosen candidate's best audio feed.
func (r *Runner) Pick(ctx context.Context, cmd *cli.Command) error {
	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}
	engine, err := r.engineFor(cmd.String("backend"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	if r.logs != nil && r.config.Log.File != "" {
		f, err := shared.OpenLogFile(r.config.Log.File)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		prev := r.logs.Redirect(f)
		defer r.logs.Redirect(prev)
	}

	model := ui.NewModel(ctx, engine, q)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	c, info := model.Selected()
	if c == nil || info == nil {
		return nil
	}
	r.writePlain("%s (%s) %s\n", c.Title, c.VideoID, c.Source)
	if best := info.BestAudio(); best != nil {
		r.writePlain("%s\n", best.URL)
	}
	return nil
}
