package scrape

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/cratedig/internal/filter"
	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/shared"
	testutils "github.com/desertthunder/cratedig/internal/testing"
)

func newTestEngine(t *testing.T, searcher *testutils.MockSearcher, store *testutils.MemoryStore) *Engine {
	t.Helper()

	logger := shared.NewLogger(&bytes.Buffer{})
	engine := NewEngine(searcher, filter.Default(), store, logger)
	engine.SetClock(func() time.Time {
		return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	})
	return engine
}

func TestRun(t *testing.T) {
	t.Run("keeps only whole word matches", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"tamil songs": {
					{ID: "pl1", Name: "Tamil Hits", TrackCount: 42},
					{ID: "pl2", Name: "tamiland travel mix", TrackCount: 10},
					{ID: "pl3", Name: "Best of Kollywood", TrackCount: 25},
				},
			},
		}
		store := &testutils.MemoryStore{}

		result, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"tamil songs"}, Options{Market: "IN", Limit: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Matched) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(result.Matched))
		}
		if result.Matched[0].PlaylistID != "pl1" || result.Matched[1].PlaylistID != "pl3" {
			t.Errorf("unexpected matches: %+v", result.Matched)
		}
		if result.Matched[0].Language != "Tamil" {
			t.Errorf("expected Tamil language label, got %s", result.Matched[0].Language)
		}
	})

	t.Run("all rows share one timestamp", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"q1": {{ID: "pl1", Name: "Tamil Hits"}},
				"q2": {{ID: "pl2", Name: "Chennai Beats"}},
			},
		}
		store := &testutils.MemoryStore{}

		result, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"q1", "q2"}, Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := "2024-01-15 10:30:00"
		for _, rec := range result.Matched {
			if rec.Timestamp != want {
				t.Errorf("expected shared timestamp %s, got %s", want, rec.Timestamp)
			}
		}
	})

	t.Run("merges after existing rows without dedup", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"tamil songs": {{ID: "pl1", Name: "Tamil Hits", TrackCount: 50}},
			},
		}
		store := &testutils.MemoryStore{}
		store.Table.Append(models.PlaylistRecord{
			PlaylistID: "pl1", PlaylistName: "Tamil Hits", NumSongs: 42,
			Query: "tamil songs", Timestamp: "2024-01-01 00:00:00",
		})

		_, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"tamil songs"}, Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Table.Len() != 2 {
			t.Fatalf("expected both occurrences kept, got %d rows", store.Table.Len())
		}
		if store.Table.Records[0].Timestamp != "2024-01-01 00:00:00" {
			t.Errorf("expected existing rows first, got %+v", store.Table.Records[0])
		}
	})

	t.Run("dedupe keeps the latest occurrence", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"tamil songs": {{ID: "pl1", Name: "Tamil Hits", TrackCount: 50}},
			},
		}
		store := &testutils.MemoryStore{}
		store.Table.Append(models.PlaylistRecord{
			PlaylistID: "pl1", NumSongs: 42, Query: "tamil songs", Timestamp: "2024-01-01 00:00:00",
		})

		_, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"tamil songs"}, Options{Dedupe: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Table.Len() != 1 {
			t.Fatalf("expected 1 deduped row, got %d", store.Table.Len())
		}
		if store.Table.Records[0].NumSongs != 50 {
			t.Errorf("expected latest occurrence kept, got %+v", store.Table.Records[0])
		}
	})

	t.Run("nil queries are rejected", func(t *testing.T) {
		store := &testutils.MemoryStore{}

		_, err := newTestEngine(t, &testutils.MockSearcher{}, store).Run(context.Background(), nil, nil, Options{})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected invalid input error, got %v", err)
		}
		if store.Saves != 0 {
			t.Error("expected no write for rejected input")
		}
	})

	t.Run("empty query list still writes the table", func(t *testing.T) {
		store := &testutils.MemoryStore{}

		result, err := newTestEngine(t, &testutils.MockSearcher{}, store).Run(context.Background(), nil, []string{}, Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.Saves != 1 {
			t.Errorf("expected one save, got %d", store.Saves)
		}
		if len(result.Matched) != 0 {
			t.Errorf("expected no matches, got %d", len(result.Matched))
		}
	})

	t.Run("search failure aborts before any write", func(t *testing.T) {
		searchErr := errors.New("upstream down")
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"q1": {{ID: "pl1", Name: "Tamil Hits"}},
			},
			SearchErr: searchErr,
			FailQuery: "q2",
		}
		store := &testutils.MemoryStore{}

		_, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"q1", "q2", "q3"}, Options{})
		if !errors.Is(err, searchErr) {
			t.Fatalf("expected search error, got %v", err)
		}

		if store.Saves != 0 {
			t.Error("expected failed run to leave the store untouched")
		}
		if len(searcher.Queries) != 2 {
			t.Errorf("expected run to stop at the failing query, got %v", searcher.Queries)
		}
	})

	t.Run("authentication failure aborts the run", func(t *testing.T) {
		authErr := errors.New("bad credentials")
		searcher := &testutils.MockSearcher{AuthErr: authErr}
		store := &testutils.MemoryStore{}

		_, err := newTestEngine(t, searcher, store).Run(context.Background(), nil, []string{"q1"}, Options{})
		if !errors.Is(err, authErr) {
			t.Fatalf("expected auth error, got %v", err)
		}
		if len(searcher.Queries) != 0 || store.Saves != 0 {
			t.Error("expected no searches or writes after auth failure")
		}
	})

	t.Run("save failure surfaces as persist error", func(t *testing.T) {
		store := &testutils.MemoryStore{SaveErr: shared.ErrPersistFailed}

		_, err := newTestEngine(t, &testutils.MockSearcher{}, store).Run(context.Background(), nil, []string{}, Options{})
		if !errors.Is(err, shared.ErrPersistFailed) {
			t.Errorf("expected persist error, got %v", err)
		}
	})

	t.Run("reports progress without blocking", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"q1": {{ID: "pl1", Name: "Tamil Hits"}},
			},
		}

		// Buffered enough to hold every update for one query.
		progress := make(chan ProgressUpdate, 8)
		_, err := newTestEngine(t, searcher, &testutils.MemoryStore{}).Run(context.Background(), progress, []string{"q1"}, Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}

		if len(phases) == 0 || phases[0] != PhaseStarted || phases[len(phases)-1] != PhaseCompleted {
			t.Errorf("unexpected phase sequence: %v", phases)
		}
	})

	t.Run("unbuffered listener does not deadlock", func(t *testing.T) {
		progress := make(chan ProgressUpdate)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = newTestEngine(t, &testutils.MockSearcher{}, &testutils.MemoryStore{}).Run(context.Background(), progress, []string{}, Options{})
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("run blocked on a slow progress listener")
		}
	})

	t.Run("recorder failure does not fail the run", func(t *testing.T) {
		searcher := &testutils.MockSearcher{
			Results: map[string][]models.Playlist{
				"q1": {{ID: "pl1", Name: "Tamil Hits"}},
			},
		}
		store := &testutils.MemoryStore{}

		engine := newTestEngine(t, searcher, store)
		engine.SetRecorder(failingRecorder{})

		if _, err := engine.Run(context.Background(), nil, []string{"q1"}, Options{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.Saves != 1 {
			t.Errorf("expected results persisted, got %d saves", store.Saves)
		}
	})
}

type failingRecorder struct{}

func (failingRecorder) Record(ctx context.Context, result *RunResult) error {
	return errors.New("history unavailable")
}

func TestPhaseString(t *testing.T) {
	tc := []struct {
		phase Phase
		want  string
	}{
		{PhaseStarted, "started"},
		{PhaseSearching, "searching"},
		{PhaseMatched, "matched"},
		{PhaseSaving, "saving"},
		{PhaseCompleted, "completed"},
		{PhaseFailed, "failed"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tc {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %s, want %s", tt.phase, got, tt.want)
		}
	}
}
