package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunState tracks one invocation of the scheduler. The completed counter is
// owned by the scheduler and bumped exactly once per finished file; readers
// take snapshots via Completed.
type RunState struct {
	RunID      string
	Total      int
	StartedAt  time.Time
	FinishedAt time.Time
	// ResumeSkipped counts files skipped before dispatch because a prior
	// run already completed them.
	ResumeSkipped int

	mu        sync.Mutex
	completed int
}

func newRunState(total int) *RunState {
	return &RunState{
		RunID:     uuid.NewString(),
		Total:     total,
		StartedAt: time.Now().UTC(),
	}
}

func (r *RunState) markCompleted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
	return r.completed
}

// Completed returns the number of files finished so far.
func (r *RunState) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Elapsed returns the run duration, live while the run is still going.
func (r *RunState) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
