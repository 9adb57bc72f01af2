package models

import (
	"fmt"
	"time"
)

// RunStatus enumerates the lifecycle states of a scrape run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is a persisted record of one scrape invocation.
type Run struct {
	id         string
	sequence   int
	status     RunStatus
	queryCount int
	matchCount int
	market     string
	language   string
	startedAt  time.Time
	finishedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

var _ Model = (*Run)(nil)

// NewRun creates a Run in the running state. The ID is assigned by the
// repository on insert.
func NewRun(sequence int, market, language string, queryCount int) *Run {
	now := time.Now()
	return &Run{
		sequence:   sequence,
		status:     RunRunning,
		queryCount: queryCount,
		market:     market,
		language:   language,
		startedAt:  now,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (r *Run) ID() string            { return r.id }
func (r *Run) Sequence() int         { return r.sequence }
func (r *Run) Status() RunStatus     { return r.status }
func (r *Run) QueryCount() int       { return r.queryCount }
func (r *Run) MatchCount() int       { return r.matchCount }
func (r *Run) Market() string        { return r.market }
func (r *Run) Language() string      { return r.language }
func (r *Run) StartedAt() time.Time  { return r.startedAt }
func (r *Run) FinishedAt() *time.Time { return r.finishedAt }
func (r *Run) CreatedAt() time.Time  { return r.createdAt }
func (r *Run) UpdatedAt() time.Time  { return r.updatedAt }
func (r *Run) DeletedAt() *time.Time { return r.deletedAt }

func (r *Run) SetID(id string)            { r.id = id }
func (r *Run) SetStatus(s RunStatus)      { r.status = s }
func (r *Run) SetSequence(seq int)        { r.sequence = seq }
func (r *Run) SetUpdatedAt(t time.Time)   { r.updatedAt = t }
func (r *Run) SetDeletedAt(t *time.Time)  { r.deletedAt = t }
func (r *Run) SetStartedAt(t time.Time)   { r.startedAt = t }
func (r *Run) SetFinishedAt(t *time.Time) { r.finishedAt = t }
func (r *Run) SetCreatedAt(t time.Time)   { r.createdAt = t }
func (r *Run) SetQueryCount(n int)        { r.queryCount = n }
func (r *Run) SetMatchCount(n int)        { r.matchCount = n }

// Finish transitions the run to a terminal status and records the match count.
func (r *Run) Finish(status RunStatus, matchCount int) {
	now := time.Now()
	r.status = status
	r.matchCount = matchCount
	r.finishedAt = &now
	r.updatedAt = now
}

// Validate checks if the run's data is valid.
func (r *Run) Validate() error {
	switch r.status {
	case RunRunning, RunCompleted, RunFailed:
	default:
		return fmt.Errorf("invalid run status: %q", r.status)
	}

	if r.queryCount < 0 {
		return fmt.Errorf("query count cannot be negative: %d", r.queryCount)
	}
	if r.matchCount < 0 {
		return fmt.Errorf("match count cannot be negative: %d", r.matchCount)
	}
	if r.market == "" {
		return fmt.Errorf("market cannot be empty")
	}
	if r.language == "" {
		return fmt.Errorf("language cannot be empty")
	}

	return nil
}
