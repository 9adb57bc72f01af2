// package formatter provides functions to export result tables to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/shared"
)

// ExportToCSV converts a ResultTable to CSV format with columns: PlaylistID, PlaylistName, NumSongs, Query, Language, Timestamp
func ExportToCSV(table *models.ResultTable) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"PlaylistID", "PlaylistName", "NumSongs", "Query", "Language", "Timestamp"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range table.Records {
		record := []string{
			rec.PlaylistID,
			rec.PlaylistName,
			strconv.Itoa(rec.NumSongs),
			rec.Query,
			rec.Language,
			rec.Timestamp,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ResultTable to a Markdown table grouped under a title
func ExportToMarkdown(table *models.ResultTable, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Playlist Results"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Rows**: %d\n\n", table.Len()))

	buf.WriteString("| Playlist | Songs | Query | Language | Captured |\n")
	buf.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, rec := range table.Records {
		name := strings.ReplaceAll(rec.PlaylistName, "|", "\\|")
		buf.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
			name, rec.NumSongs, rec.Query, rec.Language, rec.Timestamp))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ResultTable to plain text format
func ExportToText(table *models.ResultTable) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Rows: %d\n\n", table.Len()))
	for i, rec := range table.Records {
		buf.WriteString(fmt.Sprintf("%d. %s (%d songs) - %q [%s]\n",
			i+1, rec.PlaylistName, rec.NumSongs, rec.Query, rec.Timestamp))
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the result table
func ToJSON(table *models.ResultTable) ([]byte, error) {
	return shared.MarshalJSON(table.Records, true)
}

// Render converts the table to the named format. Supported formats: csv,
// markdown, text, json.
func Render(table *models.ResultTable, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(table)
	case "markdown", "md":
		return ExportToMarkdown(table, "")
	case "text", "txt":
		return ExportToText(table)
	case "json":
		return ToJSON(table)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidInput, format)
	}
}

// WriteExport renders the table in the named format and writes it to path,
// creating parent directories as needed.
func WriteExport(table *models.ResultTable, format, path string) error {
	data, err := Render(table, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}

	return nil
}
