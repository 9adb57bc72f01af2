package models

import (
	"time"
)

// TimestampLayout is the wall-clock format written to the Timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Playlist represents playlist metadata returned by a catalog search
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// PlaylistRecord is one row of the persisted result table: a playlist
// whose name passed the keyword filter, tagged with the query that found
// it, the language label, and the run's capture timestamp.
type PlaylistRecord struct {
	PlaylistID   string `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
	NumSongs     int    `json:"num_songs"`
	Query        string `json:"query"`
	Language     string `json:"language"`
	Timestamp    string `json:"timestamp"`
}

// ResultTable is the ordered sequence of records persisted to the output workbook.
type ResultTable struct {
	Records []PlaylistRecord `json:"records"`
}

// Len returns the number of rows in the table.
func (t ResultTable) Len() int {
	return len(t.Records)
}

// Append adds records to the end of the table.
func (t *ResultTable) Append(records ...PlaylistRecord) {
	t.Records = append(t.Records, records...)
}

// Merge returns a new table with t's rows first, followed by newer's rows.
// Row order within each table is preserved and no deduplication is applied.
func (t ResultTable) Merge(newer ResultTable) ResultTable {
	merged := make([]PlaylistRecord, 0, len(t.Records)+len(newer.Records))
	merged = append(merged, t.Records...)
	merged = append(merged, newer.Records...)
	return ResultTable{Records: merged}
}

// Dedupe returns a new table collapsing rows that share (PlaylistID, Query),
// keeping the last occurrence so re-scraped rows carry the newest timestamp.
// Relative order of the surviving rows is preserved.
func (t ResultTable) Dedupe() ResultTable {
	type key struct{ id, query string }

	last := make(map[key]int, len(t.Records))
	for i, rec := range t.Records {
		last[key{rec.PlaylistID, rec.Query}] = i
	}

	deduped := make([]PlaylistRecord, 0, len(last))
	for i, rec := range t.Records {
		if last[key{rec.PlaylistID, rec.Query}] == i {
			deduped = append(deduped, rec)
		}
	}
	return ResultTable{Records: deduped}
}
