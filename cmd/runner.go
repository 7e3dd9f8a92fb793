package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/yearshelf/internal/cache"
	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/repositories"
	"github.com/hollowlog/yearshelf/internal/services"
	"github.com/hollowlog/yearshelf/internal/shared"
	"github.com/hollowlog/yearshelf/internal/tasks"
	"github.com/hollowlog/yearshelf/internal/years"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	service services.Service
	logger  *log.Logger
	output  io.Writer
	clock   years.Clock
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Service services.Service
	Logger  *log.Logger
	Output  io.Writer
	Clock   years.Clock
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = years.SystemClock
	}

	return &Runner{
		config:  opts.Config,
		service: opts.Service,
		logger:  opts.Logger,
		output:  opts.Output,
		clock:   opts.Clock,
	}
}

// SetLogger swaps the runner's logger, used to redirect logs while the TUI
// owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, fetchCommand, tuiCommand, archiveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// yearRange builds the year validator from configuration.
func (r *Runner) yearRange() years.Range {
	return years.NewRange(r.config.Gallery.EarliestYear, r.clock)
}

// openArchive opens the archive database with migrations applied. The caller
// closes the returned handle.
func (r *Runner) openArchive() (*sql.DB, *repositories.ArchiveRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewArchiveRepository(db), nil
}

// fetchYear retrieves all four categories of one year through a fetch
// coordinator, failing if any category fails.
func (r *Runner) fetchYear(ctx context.Context, year int) (models.YearEntry, error) {
	if r.service == nil {
		return nil, fmt.Errorf("%w: no shelf provider configured", shared.ErrServiceUnavailable)
	}

	coordinator := tasks.NewFetchCoordinator(r.service, cache.New(), r.logger)
	requests, _ := coordinator.Select(year)

	results := make(chan tasks.FetchResult, len(requests))
	for _, req := range requests {
		go func(req tasks.FetchRequest) {
			results <- coordinator.Fetch(ctx, req)
		}(req)
	}
	for range requests {
		coordinator.Apply(<-results)
	}

	entry := models.NewYearEntry()
	for _, category := range models.Categories {
		state := coordinator.State(category)
		if state.Phase != tasks.PhaseReady {
			return nil, fmt.Errorf("%w: category %s failed", shared.ErrAPIRequest, category)
		}
		entry[category] = state.Records
	}

	return entry, nil
}

// filterCategory trims an entry down to one named category. An empty name
// returns the entry unchanged.
func filterCategory(entry models.YearEntry, name string) (models.YearEntry, error) {
	if name == "" {
		return entry, nil
	}
	category, err := models.ParseCategory(name)
	if err != nil {
		return nil, err
	}
	trimmed := models.NewYearEntry()
	trimmed[category] = entry[category]
	return trimmed, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
