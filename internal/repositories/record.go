package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/scrape"
	"github.com/desertthunder/cratedig/internal/shared"
)

// RecordRepository stores the playlist rows captured by scrape runs.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new [RecordRepository] with the given database connection
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// CreateBatch inserts the records captured by one run inside a single
// transaction. Rows that collide with an existing (run, playlist, query)
// entry are skipped.
func (r *RecordRepository) CreateBatch(runID string, records []models.PlaylistRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO records (id, run_id, playlist_id, playlist_name, num_songs, query, language, captured_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, playlist_id, query) DO NOTHING
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, rec := range records {
		_, err := stmt.Exec(shared.GenerateID(), runID, rec.PlaylistID, rec.PlaylistName,
			rec.NumSongs, rec.Query, rec.Language, rec.Timestamp, now)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}

	return nil
}

// ListByRun retrieves the records captured by a run, in insertion order.
func (r *RecordRepository) ListByRun(runID string) ([]models.PlaylistRecord, error) {
	query := `
		SELECT playlist_id, playlist_name, num_songs, query, language, captured_at
		FROM records
		WHERE run_id = ?
		ORDER BY rowid
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.PlaylistRecord
	for rows.Next() {
		var rec models.PlaylistRecord
		err := rows.Scan(&rec.PlaylistID, &rec.PlaylistName, &rec.NumSongs, &rec.Query, &rec.Language, &rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Recorder persists completed scrape runs and their matched rows. It
// implements [scrape.RunRecorder].
type Recorder struct {
	runs    *RunRepository
	records *RecordRepository
}

var _ scrape.RunRecorder = (*Recorder)(nil)

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{
		runs:    NewRunRepository(db),
		records: NewRecordRepository(db),
	}
}

// Record stores a finished run and its matched records.
func (r *Recorder) Record(ctx context.Context, result *scrape.RunResult) error {
	run := models.NewRun(0, result.Market, result.Language, result.QueryCount)
	run.SetStartedAt(result.StartedAt)
	run.Finish(models.RunCompleted, len(result.Matched))

	if err := r.runs.Create(run); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	if err := r.records.CreateBatch(run.ID(), result.Matched); err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	return nil
}
