// package formatter provides functions to export a year's records to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hollowlog/yearshelf/internal/models"
)

// categoryHeading maps a category to the section title used in rendered output.
var categoryHeading = map[models.Category]string{
	models.CategoryBook:   "Books",
	models.CategoryScreen: "Movies & TV",
	models.CategoryMusic:  "Music",
	models.CategoryGame:   "Games",
}

// ExportToCSV converts a year entry to CSV format with columns: Year, Category, Title, Completed, Cover
func ExportToCSV(year int, entry models.YearEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Year", "Category", "Title", "Completed", "Cover"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, category := range models.Categories {
		for _, record := range entry[category] {
			row := []string{
				strconv.Itoa(year),
				string(category),
				record.Item.DisplayTitle,
				record.CreatedTime,
				record.Item.CoverImageURL,
			}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a year entry to Markdown, one section per category.
func ExportToMarkdown(year int, entry models.YearEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %d\n\n", year))
	buf.WriteString(fmt.Sprintf("**Items**: %d\n", entry.Total()))

	for _, category := range models.Categories {
		records := entry[category]
		buf.WriteString(fmt.Sprintf("\n## %s (%d)\n\n", categoryHeading[category], len(records)))
		if len(records) == 0 {
			buf.WriteString("_Nothing here._\n")
			continue
		}
		for i, record := range records {
			completed := record.CreatedTime
			if created, err := record.CreatedAt(); err == nil {
				completed = created.Format("Jan 2")
			}
			buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, record.Item.DisplayTitle, completed))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a year entry to plain text format
func ExportToText(year int, entry models.YearEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Year: %d\n", year))
	buf.WriteString(fmt.Sprintf("Items: %d\n", entry.Total()))

	for _, category := range models.Categories {
		records := entry[category]
		if len(records) == 0 {
			continue
		}
		buf.WriteString(fmt.Sprintf("\n%s:\n", categoryHeading[category]))
		for i, record := range records {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, record.Item.DisplayTitle))
		}
	}

	return buf.Bytes(), nil
}

// WriteExport renders a year entry in the named format ("csv", "markdown" or
// "text") and writes it to path. An empty path derives one from the year.
func WriteExport(year int, entry models.YearEntry, format, path string) (string, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "csv":
		data, err = ExportToCSV(year, entry)
		ext = ".csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(year, entry)
		ext = ".md"
	case "text", "txt", "":
		data, err = ExportToText(year, entry)
		ext = ".txt"
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("yearshelf_%d%s", year, ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
