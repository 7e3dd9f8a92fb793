package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hollowlog/yearshelf/internal/cache"
	"github.com/hollowlog/yearshelf/internal/navstate"
	"github.com/hollowlog/yearshelf/internal/shared"
	"github.com/hollowlog/yearshelf/internal/tasks"
	"github.com/hollowlog/yearshelf/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal gallery.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: no shelf provider configured", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/yearshelf-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// --url carries a full deep-link query ("?year=2023&view=grid"); --year
	// is shorthand for just the year key. Both seed the query state the
	// binder starts from, and --year wins when both are given.
	rawQuery := cmd.String("url")
	if y := cmd.String("year"); y != "" {
		rawQuery = "year=" + y
	}

	rng := r.yearRange()
	binder := navstate.NewBinder(rawQuery, rng, navstate.NewMemoryHistory())
	coordinator := tasks.NewFetchCoordinator(r.service, cache.New(), fileLogger)

	model := ui.NewModel(ctx, coordinator, binder, rng)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the gallery interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Year to open on (defaults to the current year)",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Deep-link query to open with, e.g. \"?year=2023\"",
			},
		},
		Action: r.TUI,
	}
}
