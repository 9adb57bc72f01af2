package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cratedig/internal/filter"
	"github.com/desertthunder/cratedig/internal/repositories"
	"github.com/desertthunder/cratedig/internal/scrape"
	"github.com/desertthunder/cratedig/internal/shared"
	"github.com/desertthunder/cratedig/internal/workbook"
	"github.com/urfave/cli/v3"
)

// Scrape runs the full pipeline: read queries, search Spotify, filter by
// keywords, and persist matches to the results workbook.
func (r *Runner) Scrape(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	queriesPath := cmd.String("queries")
	if queriesPath == "" {
		queriesPath = r.config.Scrape.QueriesPath
	}
	column := cmd.String("column")
	if column == "" {
		column = r.config.Scrape.QueryColumn
	}
	market := cmd.String("market")
	if market == "" {
		market = r.config.Scrape.Market
	}
	limit := int(cmd.Int("limit"))
	if limit == 0 {
		limit = r.config.Scrape.Limit
	}
	resultsPath := r.resultsPath(cmd)

	matcher, err := filter.New(r.config.Scrape.Language, r.config.Scrape.Keywords)
	if err != nil {
		return fmt.Errorf("invalid keyword configuration: %w", err)
	}

	queries, err := workbook.ReadQueries(queriesPath, column)
	if err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

	r.logger.Info("loaded queries", "path", queriesPath, "count", len(queries))

	engine := scrape.NewEngine(r.spotify, matcher, workbook.NewStore(resultsPath), r.logger)

	if !cmd.Bool("no-record") {
		if db, err := r.openDatabase(); err != nil {
			r.logger.Warn("run history unavailable", "error", err)
		} else {
			defer db.Close()
			engine.SetRecorder(repositories.NewRecorder(db))
		}
	}

	progress := make(chan scrape.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Phase == scrape.PhaseMatched {
				r.writePlain("  [%d/%d] %s\n", update.Completed, update.Total, update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progress, queries, scrape.Options{
		Market: market,
		Limit:  limit,
		Dedupe: cmd.Bool("dedupe"),
	})
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	r.writePlainHeader("Scrape Complete")
	r.writePlain("Queries: %d\n", result.QueryCount)
	r.writePlain("Matches: %d\n", len(result.Matched))
	r.writePlain("Total rows: %d\n", result.Table.Len())
	r.writePlain("Saved to: %s\n", resultsPath)

	return nil
}
