package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"sublift/internal/logging"
	"sublift/internal/processor"
	"sublift/internal/report"
)

// FileRunner processes one source file to completion.
type FileRunner interface {
	Process(ctx context.Context, sourceFile string) processor.Outcome
}

// Journal is the advisory record of files completed by prior runs.
type Journal interface {
	Load(ctx context.Context) map[string]struct{}
	MarkDone(ctx context.Context, sourcePath, runID string) error
}

// Progress is invoked after every finished file, including resume skips.
type Progress func(completed, total int, outcome processor.Outcome)

// Scheduler distributes files across workers and folds results into the
// aggregator.
type Scheduler struct {
	Runner     FileRunner
	Aggregator *report.Aggregator
	// Journal, when non-nil, enables resume: files it reports as done are
	// skipped before dispatch, and completed files are recorded into it.
	Journal     Journal
	Concurrency int
	OnProgress  Progress
	Logger      *slog.Logger
}

// Run processes every file and returns the final run state. The run always
// completes; per-file failures land in outcomes, and cancellation only stops
// dispatch of not-yet-started files.
func (s *Scheduler) Run(ctx context.Context, files []string) *RunState {
	state := newRunState(len(files))
	log := logging.WithComponent(s.logger(), "scheduler")

	workers := s.Concurrency
	if workers < 1 {
		workers = 1
	}

	// Workers get a detached context: cancellation must not kill an
	// extraction mid-file.
	workCtx := context.WithoutCancel(ctx)

	var done map[string]struct{}
	if s.Journal != nil {
		done = s.Journal.Load(workCtx)
	}

	log.Info("run started",
		logging.String("run_id", state.RunID),
		logging.Int("files", len(files)),
		logging.Int("workers", workers))

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				outcome := s.safeProcess(workCtx, file)
				s.finish(workCtx, state, outcome)
			}
		}()
	}

dispatch:
	for _, file := range files {
		if _, skip := done[file]; skip {
			state.ResumeSkipped++
			s.finish(workCtx, state, processor.Outcome{
				Source: file,
				Status: processor.StatusSkippedExists,
			})
			continue
		}
		if ctx.Err() != nil {
			log.Warn("dispatch stopped", logging.Error(ctx.Err()),
				logging.Int("remaining", state.Total-state.Completed()))
			break dispatch
		}
		select {
		case jobs <- file:
		case <-ctx.Done():
			log.Warn("dispatch stopped", logging.Error(ctx.Err()),
				logging.Int("remaining", state.Total-state.Completed()))
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	state.FinishedAt = time.Now().UTC()
	log.Info("run finished",
		logging.String("run_id", state.RunID),
		logging.Int("completed", state.Completed()),
		logging.Duration("elapsed", state.Elapsed()))
	return state
}

// safeProcess runs one file with panic containment. A panicking worker
// yields an error outcome for its file and keeps its siblings alive.
func (s *Scheduler) safeProcess(ctx context.Context, file string) (outcome processor.Outcome) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.WithComponent(s.logger(), "scheduler").Error("worker panic",
				logging.String("file", file),
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())))
			outcome = processor.ErrorOutcome(file, time.Since(started), fmt.Errorf("worker panic: %v", r))
		}
	}()
	return s.Runner.Process(ctx, file)
}

func (s *Scheduler) finish(ctx context.Context, state *RunState, outcome processor.Outcome) {
	if s.Aggregator != nil {
		s.Aggregator.Add(outcome)
	}
	// Dry-run outcomes never touch the journal: nothing was written, so a
	// later real run must still process the file.
	if s.Journal != nil && !outcome.DryRun && outcome.Status != processor.StatusError {
		if err := s.Journal.MarkDone(ctx, outcome.Source, state.RunID); err != nil {
			logging.WithComponent(s.logger(), "scheduler").Warn("journal write failed",
				logging.String("file", outcome.Source), logging.Error(err))
		}
	}
	completed := state.markCompleted()
	if s.OnProgress != nil {
		s.OnProgress(completed, state.Total, outcome)
	}
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}
