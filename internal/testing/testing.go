// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/services"
)

// MockSearcher is a configurable test double for [services.Searcher].
// Results maps a query to the playlists returned for it; queries without an
// entry return no results.
type MockSearcher struct {
	Results map[string][]models.Playlist
	AuthErr error
	// SearchErr fails every search, or only the query named in FailQuery
	// when that is set.
	SearchErr error
	FailQuery string

	Queries []string
}

func (m *MockSearcher) Authenticate(ctx context.Context) error {
	return m.AuthErr
}

func (m *MockSearcher) SearchPlaylists(ctx context.Context, query string, opts services.SearchOptions) ([]models.Playlist, error) {
	m.Queries = append(m.Queries, query)

	if m.SearchErr != nil && (m.FailQuery == "" || m.FailQuery == query) {
		return nil, m.SearchErr
	}
	return m.Results[query], nil
}

func (m *MockSearcher) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MemoryStore is an in-memory [scrape.Store] double.
type MemoryStore struct {
	Table   models.ResultTable
	LoadErr error
	SaveErr error
	Saves   int
}

func (s *MemoryStore) Load() (*models.ResultTable, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	snapshot := s.Table
	return &snapshot, nil
}

func (s *MemoryStore) Save(table *models.ResultTable) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Table = *table
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
