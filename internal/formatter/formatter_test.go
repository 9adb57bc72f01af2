package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/shared"
	testutils "github.com/desertthunder/cratedig/internal/testing"
)

func sampleTable() *models.ResultTable {
	table := &models.ResultTable{}
	table.Append(
		models.PlaylistRecord{
			PlaylistID:   "pl1",
			PlaylistName: "Tamil Hits",
			NumSongs:     42,
			Query:        "tamil songs",
			Language:     "Tamil",
			Timestamp:    "2024-01-15 10:30:00",
		},
		models.PlaylistRecord{
			PlaylistID:   "pl2",
			PlaylistName: "Kollywood | Classics",
			NumSongs:     17,
			Query:        "kollywood",
			Language:     "Tamil",
			Timestamp:    "2024-01-15 10:30:00",
		},
	)
	return table
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleTable())
	if err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "PlaylistID,PlaylistName,NumSongs,Query,Language,Timestamp" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Tamil Hits") || !strings.Contains(lines[1], "42") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleTable(), "Tamil Playlists")
	if err != nil {
		t.Fatalf("failed to export Markdown: %v", err)
	}

	output := string(data)
	if !strings.HasPrefix(output, "# Tamil Playlists\n") {
		t.Errorf("expected title heading, got %s", output)
	}
	if !strings.Contains(output, "**Rows**: 2") {
		t.Error("expected row count")
	}
	if !strings.Contains(output, `Kollywood \| Classics`) {
		t.Error("expected pipe characters escaped in playlist names")
	}

	t.Run("default title", func(t *testing.T) {
		data, err := ExportToMarkdown(&models.ResultTable{}, "")
		if err != nil {
			t.Fatalf("failed to export Markdown: %v", err)
		}
		if !strings.HasPrefix(string(data), "# Playlist Results\n") {
			t.Errorf("expected default title, got %s", data)
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleTable())
	if err != nil {
		t.Fatalf("failed to export text: %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "Rows: 2") {
		t.Error("expected row count")
	}
	if !strings.Contains(output, `1. Tamil Hits (42 songs) - "tamil songs"`) {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTable())
	if err != nil {
		t.Fatalf("failed to export JSON: %v", err)
	}

	var records []models.PlaylistRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if len(records) != 2 || records[0].PlaylistID != "pl1" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestWriteExport(t *testing.T) {
	formats := []struct {
		format string
		file   string
	}{
		{format: "csv", file: "out.csv"},
		{format: "markdown", file: "out.md"},
		{format: "text", file: "out.txt"},
		{format: "json", file: "out.json"},
	}

	for _, tt := range formats {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "exports", tt.file)

			if err := WriteExport(sampleTable(), tt.format, path); err != nil {
				t.Fatalf("failed to write export: %v", err)
			}

			testutils.AssertFileExists(t, path)
			if content := testutils.MustReadFile(t, path); !strings.Contains(content, "Tamil") {
				t.Errorf("expected exported content, got %s", content)
			}
		})
	}

	t.Run("unsupported format", func(t *testing.T) {
		err := WriteExport(sampleTable(), "yaml", filepath.Join(t.TempDir(), "out.yaml"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})
}
