package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/repositories"
	"github.com/desertthunder/cratedig/internal/shared"
	"github.com/urfave/cli/v3"
)

// runSummary is the serializable view of a [models.Run].
type runSummary struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	QueryCount int        `json:"query_count"`
	MatchCount int        `json:"match_count"`
	Market     string     `json:"market"`
	Language   string     `json:"language"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func summarizeRun(run *models.Run) runSummary {
	return runSummary{
		ID:         run.ID(),
		Status:     string(run.Status()),
		QueryCount: run.QueryCount(),
		MatchCount: run.MatchCount(),
		Market:     run.Market(),
		Language:   run.Language(),
		StartedAt:  run.StartedAt(),
		FinishedAt: run.FinishedAt(),
	}
}

// RunsList prints recorded scrape runs, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	status := cmd.String("status")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if status != "" {
		criteria["status"] = status
	}

	runs, err := repositories.NewRunRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if useJSON {
		summaries := make([]runSummary, len(runs))
		for i, run := range runs {
			summaries[i] = summarizeRun(run)
		}
		return r.writeJSON(summaries, pretty)
	}

	r.writePlainHeader("Scrape Runs")
	if len(runs) == 0 {
		r.writePlain("No runs recorded\n")
		return nil
	}

	for _, run := range runs {
		r.writePlain("%s  %s  queries=%d matches=%d  %s\n",
			run.StartedAt().Format(models.TimestampLayout), run.Status(),
			run.QueryCount(), run.MatchCount(), run.ID())
	}

	return nil
}

// RunsShow prints a single run and the playlists it matched.
func (r *Runner) RunsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if id == "" {
		return fmt.Errorf("%w: run id is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := repositories.NewRunRepository(db).Get(id)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	records, err := repositories.NewRecordRepository(db).ListByRun(id)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if useJSON {
		return r.writeJSON(struct {
			Run     runSummary              `json:"run"`
			Records []models.PlaylistRecord `json:"records"`
		}{summarizeRun(run), records}, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Run %s", run.ID()))
	r.writePlain("Status: %s\n", run.Status())
	r.writePlain("Market: %s  Language: %s\n", run.Market(), run.Language())
	r.writePlain("Queries: %d  Matches: %d\n", run.QueryCount(), run.MatchCount())
	r.writePlain("Started: %s\n", run.StartedAt().Format(models.TimestampLayout))
	if finished := run.FinishedAt(); finished != nil {
		r.writePlain("Finished: %s\n", finished.Format(models.TimestampLayout))
	}

	if len(records) > 0 {
		r.writePlainln("Matched playlists:")
		for i, rec := range records {
			r.writePlain("%d. %s (%d songs) - %q\n", i+1, rec.PlaylistName, rec.NumSongs, rec.Query)
		}
	}

	return nil
}
