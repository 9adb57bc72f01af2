// Package workbook reads query lists from and persists playlist results to
// xlsx workbooks via excelize.
//
// Result workbooks survive partial runs: WriteResults replaces the file
// atomically, so readers never observe a half-written sheet.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/shared"
	"github.com/xuri/excelize/v2"
)

// resultColumns is the header row of a results workbook, in column order.
var resultColumns = []string{
	"PlaylistID",
	"PlaylistName",
	"NumSongs",
	"Query",
	"Language",
	"Timestamp",
}

// ReadQueries extracts the values of the named column from the first sheet
// of the workbook at path. Blank cells are dropped and surrounding
// whitespace is trimmed.
func ReadQueries(path, column string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", shared.ErrSourceNotFound, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q in %s", shared.ErrMissingColumn, column, path)
	}

	idx := -1
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == column {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", shared.ErrMissingColumn, column, path)
	}

	// A header-only workbook is a valid, empty query list.
	queries := []string{}
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}

		q := strings.TrimSpace(row[idx])
		if q == "" {
			continue
		}
		queries = append(queries, q)
	}

	return queries, nil
}

// LoadResults parses an existing results workbook. A missing file is not an
// error; it yields an empty table so first runs and re-runs share one code
// path.
func LoadResults(path string) (*models.ResultTable, error) {
	table := &models.ResultTable{}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(rows) == 0 {
		return table, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		index[strings.TrimSpace(header)] = i
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for i, row := range rows[1:] {
		numSongs := 0
		if raw := strings.TrimSpace(cell(row, "NumSongs")); raw != "" {
			numSongs, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d of %s has non-numeric NumSongs %q", shared.ErrInvalidInput, i+2, path, raw)
			}
		}
		table.Append(models.PlaylistRecord{
			PlaylistID:   cell(row, "PlaylistID"),
			PlaylistName: cell(row, "PlaylistName"),
			NumSongs:     numSongs,
			Query:        cell(row, "Query"),
			Language:     cell(row, "Language"),
			Timestamp:    cell(row, "Timestamp"),
		})
	}

	return table, nil
}

// WriteResults persists the table to an xlsx workbook at path, creating
// parent directories as needed. The workbook is written to a temporary file
// in the target directory and renamed into place.
func WriteResults(path string, table *models.ResultTable) error {
	if table == nil {
		return fmt.Errorf("%w: nil result table", shared.ErrInvalidInput)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create %s: %v", shared.ErrPersistFailed, dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(resultColumns))
	for i, col := range resultColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}

	for i, rec := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
		}

		row := []any{rec.PlaylistID, rec.PlaylistName, rec.NumSongs, rec.Query, rec.Language, rec.Timestamp}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", shared.ErrPersistFailed, err)
	}

	return nil
}
