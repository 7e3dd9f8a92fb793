package main

import (
	"context"
	"fmt"

	"github.com/hollowlog/yearshelf/internal/formatter"
	"github.com/urfave/cli/v3"
)

// ArchiveSave fetches a year and stores the snapshot in the local database.
func (r *Runner) ArchiveSave(ctx context.Context, cmd *cli.Command) error {
	rng := r.yearRange()
	year := rng.ResolveBare(cmd.String("year"))

	entry, err := r.fetchYear(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to fetch %d: %w", year, err)
	}

	db, repo, err := r.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.SaveYear(year, entry, r.service.Name()); err != nil {
		return fmt.Errorf("failed to archive %d: %w", year, err)
	}

	return r.writePlain("✓ Archived %d (%d records)\n", year, entry.Total())
}

// ArchiveShow prints a stored year without touching the network.
func (r *Runner) ArchiveShow(ctx context.Context, cmd *cli.Command) error {
	rng := r.yearRange()
	year := rng.ResolveBare(cmd.String("year"))

	db, repo, err := r.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := repo.GetYear(year)
	if err != nil {
		return err
	}

	entry, err = filterCategory(entry, cmd.String("category"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"year": year, "entries": entry}, cmd.Bool("pretty"))
	}

	text, err := formatter.ExportToText(year, entry)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// ArchiveList prints all stored snapshots.
func (r *Runner) ArchiveList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots, err := repo.ListYears()
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		return r.writePlain("No archived years. Run 'yearshelf archive save --year <year>' first.\n")
	}

	for _, s := range snapshots {
		r.writePlain("%d  %4d records  via %s  (%s)\n", s.Year, s.Total, s.Source, s.ArchivedAt.Format("2006-01-02"))
	}
	return nil
}

// ArchiveDelete removes a stored snapshot.
func (r *Runner) ArchiveDelete(ctx context.Context, cmd *cli.Command) error {
	rng := r.yearRange()
	year := rng.ResolveBare(cmd.String("year"))

	db, repo, err := r.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.DeleteYear(year); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted archive for %d\n", year)
}

// archiveCommand handles local year snapshots
func archiveCommand(r *Runner) *cli.Command {
	yearFlag := &cli.StringFlag{
		Name:    "year",
		Aliases: []string{"y"},
		Usage:   "Year (defaults to the current year)",
	}

	return &cli.Command{
		Name:  "archive",
		Usage: "Store and read year snapshots locally",
		Commands: []*cli.Command{
			{
				Name:   "save",
				Usage:  "Fetch a year and store it",
				Flags:  []cli.Flag{yearFlag},
				Action: r.ArchiveSave,
			},
			{
				Name:  "show",
				Usage: "Print a stored year",
				Flags: []cli.Flag{
					yearFlag,
					&cli.StringFlag{
						Name:  "category",
						Usage: "Limit output to one category: " + categoryUsage(),
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ArchiveShow,
			},
			{
				Name:   "list",
				Usage:  "List stored years",
				Action: r.ArchiveList,
			},
			{
				Name:   "delete",
				Usage:  "Remove a stored year",
				Flags:  []cli.Flag{yearFlag},
				Action: r.ArchiveDelete,
			},
		},
	}
}
