package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/shared"
)

// ArchivedYear describes one stored year snapshot.
type ArchivedYear struct {
	ID         string
	Year       int
	Sequence   int
	Source     string
	ArchivedAt time.Time
	Total      int
}

// ArchiveRepository stores complete year entries in SQLite.
//
// SaveYear replaces any existing snapshot for the year, so a stored year is
// always the result of a single successful fetch, never a partial merge.
type ArchiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates a new ArchiveRepository with the given database connection
func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// SaveYear stores the entry for a year, replacing any previous snapshot.
// The entry is normalized so every category key is present.
func (r *ArchiveRepository) SaveYear(year int, entry models.YearEntry, source string) error {
	sequence, err := NextSequence(r.db, "archive_years")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry = entry.Clone()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascades into archive_records.
	if _, err := tx.Exec("DELETE FROM archive_years WHERE year = ?", year); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	yearID := shared.GenerateID()
	_, err = tx.Exec(
		"INSERT INTO archive_years (id, year, sequence, source) VALUES (?, ?, ?, ?)",
		yearID, year, sequence, source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert archive year: %w", err)
	}

	insert := `
		INSERT INTO archive_records (id, year_id, category, position, item_id, display_title, cover_image_url, created_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, category := range models.Categories {
		for position, record := range entry[category] {
			_, err = tx.Exec(insert,
				shared.GenerateID(),
				yearID,
				string(category),
				position,
				record.Item.ID,
				record.Item.DisplayTitle,
				record.Item.CoverImageURL,
				record.CreatedTime,
			)
			if err != nil {
				return fmt.Errorf("failed to insert archive record: %w", err)
			}
		}
	}

	return tx.Commit()
}

// GetYear loads a stored year entry. Returns shared.ErrYearNotArchived when
// the year has never been saved.
func (r *ArchiveRepository) GetYear(year int) (models.YearEntry, error) {
	var yearID string
	err := r.db.QueryRow("SELECT id FROM archive_years WHERE year = ?", year).Scan(&yearID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", shared.ErrYearNotArchived, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up archive year: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT category, item_id, display_title, cover_image_url, created_time
		FROM archive_records
		WHERE year_id = ?
		ORDER BY category, position
	`, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive records: %w", err)
	}
	defer rows.Close()

	entry := models.NewYearEntry()
	for rows.Next() {
		var categoryName string
		var record models.CategoryRecord
		err := rows.Scan(
			&categoryName,
			&record.Item.ID,
			&record.Item.DisplayTitle,
			&record.Item.CoverImageURL,
			&record.CreatedTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive record: %w", err)
		}

		category, err := models.ParseCategory(categoryName)
		if err != nil {
			return nil, fmt.Errorf("corrupt archive row: %w", err)
		}
		entry[category] = append(entry[category], record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive records: %w", err)
	}

	return entry, nil
}

// ListYears returns all stored snapshots ordered by year ascending.
func (r *ArchiveRepository) ListYears() ([]ArchivedYear, error) {
	rows, err := r.db.Query(`
		SELECT y.id, y.year, y.sequence, y.source, y.archived_at,
		       (SELECT COUNT(*) FROM archive_records r WHERE r.year_id = y.id)
		FROM archive_years y
		ORDER BY y.year
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive years: %w", err)
	}
	defer rows.Close()

	var years []ArchivedYear
	for rows.Next() {
		var y ArchivedYear
		if err := rows.Scan(&y.ID, &y.Year, &y.Sequence, &y.Source, &y.ArchivedAt, &y.Total); err != nil {
			return nil, fmt.Errorf("failed to scan archive year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive years: %w", err)
	}

	return years, nil
}

// DeleteYear removes a stored snapshot and its records. Returns
// shared.ErrYearNotArchived when the year has never been saved.
func (r *ArchiveRepository) DeleteYear(year int) error {
	result, err := r.db.Exec("DELETE FROM archive_years WHERE year = ?", year)
	if err != nil {
		return fmt.Errorf("failed to delete archive year: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", shared.ErrYearNotArchived, year)
	}

	return nil
}
