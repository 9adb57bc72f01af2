package scrape

import "fmt"

// Phase identifies where in the pipeline a progress update originated.
type Phase int

const (
	PhaseStarted Phase = iota
	PhaseSearching
	PhaseMatched
	PhaseSaving
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseSearching:
		return "searching"
	case PhaseMatched:
		return "matched"
	case PhaseSaving:
		return "saving"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressUpdate reports pipeline progress to an optional listener.
type ProgressUpdate struct {
	Phase     Phase
	Query     string
	Message   string
	Completed int
	Total     int
}

func startedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseStarted,
		Message: fmt.Sprintf("scraping %d queries", total),
		Total:   total,
	}
}

func searchingUpdate(query string, completed, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:     PhaseSearching,
		Query:     query,
		Message:   fmt.Sprintf("searching %q", query),
		Completed: completed,
		Total:     total,
	}
}

func matchedUpdate(query string, matches, completed, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:     PhaseMatched,
		Query:     query,
		Message:   fmt.Sprintf("%d matches for %q", matches, query),
		Completed: completed,
		Total:     total,
	}
}

func savingUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseSaving,
		Message: fmt.Sprintf("writing %d rows", rows),
	}
}

func completedUpdate(matches, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:     PhaseCompleted,
		Message:   fmt.Sprintf("found %d playlists across %d queries", matches, total),
		Completed: total,
		Total:     total,
	}
}

func failedUpdate(err error) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseFailed, Message: err.Error()}
}

// sendProgress delivers an update without blocking. Updates are dropped when
// the listener falls behind or no channel was provided.
func sendProgress(ch chan<- ProgressUpdate, update ProgressUpdate) {
	if ch == nil {
		return
	}

	select {
	case ch <- update:
	default:
	}
}
