// Package scrape runs the playlist retrieval pipeline: search each query
// against the upstream service, keep playlists whose names match the
// configured keyword set, and persist the accumulated results.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cratedig/internal/filter"
	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/services"
	"github.com/desertthunder/cratedig/internal/shared"
)

// Store loads and persists result tables. The workbook package provides the
// xlsx-backed implementation.
type Store interface {
	Load() (*models.ResultTable, error)
	Save(table *models.ResultTable) error
}

// RunRecorder persists run metadata for later inspection. Recording is best
// effort and never fails a scrape.
type RunRecorder interface {
	Record(ctx context.Context, result *RunResult) error
}

// Options control a single pipeline run.
type Options struct {
	Market string
	Limit  int
	// Dedupe collapses rows sharing a playlist and query, keeping the most
	// recent occurrence. Off by default so repeated runs keep their history.
	Dedupe bool
}

// RunResult summarizes a completed pipeline run.
type RunResult struct {
	QueryCount int
	Matched    []models.PlaylistRecord
	Table      *models.ResultTable
	Timestamp  string
	Market     string
	Language   string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Engine wires the searcher, keyword matcher, and result store into the
// pipeline. Construct it with NewEngine and run it with Run.
type Engine struct {
	searcher services.Searcher
	matcher  *filter.Matcher
	store    Store
	recorder RunRecorder
	logger   *log.Logger
	now      func() time.Time
}

func NewEngine(searcher services.Searcher, matcher *filter.Matcher, store Store, logger *log.Logger) *Engine {
	return &Engine{
		searcher: searcher,
		matcher:  matcher,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// SetRecorder attaches an optional run history recorder.
func (e *Engine) SetRecorder(r RunRecorder) {
	e.recorder = r
}

// SetClock overrides the timestamp source.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Run executes the pipeline over queries. Every row appended during one run
// shares a single timestamp captured when the run starts. Any search failure
// aborts the run before the store is touched, so a failed run never leaves a
// partially updated workbook behind.
//
// Progress updates are sent to the optional channel without blocking.
func (e *Engine) Run(ctx context.Context, progress chan<- ProgressUpdate, queries []string, opts Options) (*RunResult, error) {
	if queries == nil {
		return nil, fmt.Errorf("%w: queries must be a list", shared.ErrInvalidInput)
	}

	startedAt := e.now()
	timestamp := startedAt.Format(models.TimestampLayout)
	total := len(queries)

	sendProgress(progress, startedUpdate(total))
	e.logger.Info("starting scrape", "queries", total, "market", opts.Market, "language", e.matcher.Label())

	if err := e.searcher.Authenticate(ctx); err != nil {
		sendProgress(progress, failedUpdate(err))
		return nil, fmt.Errorf("%s authentication failed: %w", e.searcher.Name(), err)
	}

	var matched []models.PlaylistRecord
	for i, query := range queries {
		sendProgress(progress, searchingUpdate(query, i, total))

		playlists, err := e.searcher.SearchPlaylists(ctx, query, services.SearchOptions{
			Market: opts.Market,
			Limit:  opts.Limit,
		})
		if err != nil {
			sendProgress(progress, failedUpdate(err))
			return nil, fmt.Errorf("search for %q failed: %w", query, err)
		}

		count := 0
		for _, p := range playlists {
			if !e.matcher.Match(p.Name) {
				continue
			}

			matched = append(matched, models.PlaylistRecord{
				PlaylistID:   p.ID,
				PlaylistName: p.Name,
				NumSongs:     p.TrackCount,
				Query:        query,
				Language:     e.matcher.Label(),
				Timestamp:    timestamp,
			})
			count++
		}

		e.logger.Debug("query done", "query", query, "results", len(playlists), "matches", count)
		sendProgress(progress, matchedUpdate(query, count, i+1, total))
	}

	existing, err := e.store.Load()
	if err != nil {
		sendProgress(progress, failedUpdate(err))
		return nil, fmt.Errorf("failed to load existing results: %w", err)
	}

	table := existing.Merge(models.ResultTable{Records: matched})
	if opts.Dedupe {
		table = table.Dedupe()
	}

	sendProgress(progress, savingUpdate(table.Len()))
	if err := e.store.Save(&table); err != nil {
		sendProgress(progress, failedUpdate(err))
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	result := &RunResult{
		QueryCount: total,
		Matched:    matched,
		Table:      &table,
		Timestamp:  timestamp,
		Market:     opts.Market,
		Language:   e.matcher.Label(),
		StartedAt:  startedAt,
		FinishedAt: e.now(),
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, result); err != nil {
			e.logger.Warn("failed to record run history", "error", err)
		}
	}

	e.logger.Info("scrape complete", "matches", len(matched), "rows", table.Len())
	sendProgress(progress, completedUpdate(len(matched), total))

	return result, nil
}
