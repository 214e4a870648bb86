package scheduler

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"sublift/internal/processor"
	"sublift/internal/report"
	"sublift/internal/testsupport"
)

type scriptedRunner struct {
	mu        sync.Mutex
	processed []string
	statuses  map[string]processor.Status
	panicOn   string
	dryRun    bool
}

func (r *scriptedRunner) Process(ctx context.Context, sourceFile string) processor.Outcome {
	r.mu.Lock()
	r.processed = append(r.processed, sourceFile)
	r.mu.Unlock()

	if sourceFile == r.panicOn {
		panic("boom")
	}
	status := processor.StatusExtracted
	if r.statuses != nil {
		if s, ok := r.statuses[sourceFile]; ok {
			status = s
		}
	}
	return processor.Outcome{Source: sourceFile, Status: status, DryRun: r.dryRun}
}

type memoryJournal struct {
	mu   sync.Mutex
	done map[string]struct{}
}

func newMemoryJournal(done ...string) *memoryJournal {
	j := &memoryJournal{done: make(map[string]struct{})}
	for _, path := range done {
		j.done[path] = struct{}{}
	}
	return j
}

func (j *memoryJournal) Load(ctx context.Context) map[string]struct{} {
	j.mu.Lock()
	defer j.mu.Unlock()
	copied := make(map[string]struct{}, len(j.done))
	for path := range j.done {
		copied[path] = struct{}{}
	}
	return copied
}

func (j *memoryJournal) MarkDone(ctx context.Context, sourcePath, runID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.done[sourcePath] = struct{}{}
	return nil
}

func TestSequentialOrderPreserved(t *testing.T) {
	runner := &scriptedRunner{}
	files := []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv"}
	s := &Scheduler{Runner: runner, Aggregator: report.NewAggregator(), Concurrency: 1}

	state := s.Run(t.Context(), files)
	if state.Completed() != 3 {
		t.Fatalf("completed = %d, want 3", state.Completed())
	}
	if !reflect.DeepEqual(runner.processed, files) {
		t.Fatalf("processing order = %v, want %v", runner.processed, files)
	}
}

func TestParallelProcessesEverything(t *testing.T) {
	runner := &scriptedRunner{}
	files := []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv", "/m/d.mkv", "/m/e.mkv"}
	agg := report.NewAggregator()
	s := &Scheduler{Runner: runner, Aggregator: agg, Concurrency: 3}

	state := s.Run(t.Context(), files)
	if state.Completed() != len(files) {
		t.Fatalf("completed = %d, want %d", state.Completed(), len(files))
	}
	if summary := agg.Summary(); summary.Processed != len(files) || summary.Extracted != len(files) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestWorkerPanicContained(t *testing.T) {
	runner := &scriptedRunner{panicOn: "/m/b.mkv"}
	files := []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv"}
	agg := report.NewAggregator()
	s := &Scheduler{Runner: runner, Aggregator: agg, Concurrency: 2}

	state := s.Run(t.Context(), files)
	if state.Completed() != 3 {
		t.Fatalf("completed = %d, want 3", state.Completed())
	}
	summary := agg.Summary()
	if summary.Errors != 1 || summary.Extracted != 2 {
		t.Fatalf("unexpected summary after panic: %+v", summary)
	}

	var panickedOutcome bool
	for _, outcome := range agg.Outcomes() {
		if outcome.Source == "/m/b.mkv" && outcome.Status == processor.StatusError {
			panickedOutcome = true
		}
	}
	if !panickedOutcome {
		t.Fatal("expected error outcome for panicked file")
	}
}

func TestResumeSkipsCompletedFiles(t *testing.T) {
	runner := &scriptedRunner{}
	journal := newMemoryJournal("/m/a.mkv")
	files := []string{"/m/a.mkv", "/m/b.mkv"}
	agg := report.NewAggregator()
	s := &Scheduler{Runner: runner, Aggregator: agg, Journal: journal, Concurrency: 1}

	state := s.Run(t.Context(), files)
	if state.Completed() != 2 || state.ResumeSkipped != 1 {
		t.Fatalf("completed = %d, resume skipped = %d", state.Completed(), state.ResumeSkipped)
	}
	if len(runner.processed) != 1 || runner.processed[0] != "/m/b.mkv" {
		t.Fatalf("runner saw %v, want only /m/b.mkv", runner.processed)
	}
	if summary := agg.Summary(); summary.Processed != 2 || summary.SkippedExists != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestJournalSkipsErrorOutcomes(t *testing.T) {
	runner := &scriptedRunner{statuses: map[string]processor.Status{"/m/bad.mkv": processor.StatusError}}
	journal := newMemoryJournal()
	s := &Scheduler{Runner: runner, Journal: journal, Concurrency: 1}

	s.Run(t.Context(), []string{"/m/good.mkv", "/m/bad.mkv"})
	done := journal.Load(t.Context())
	if _, ok := done["/m/good.mkv"]; !ok {
		t.Fatal("successful file missing from journal")
	}
	if _, ok := done["/m/bad.mkv"]; ok {
		t.Fatal("errored file must not be journaled")
	}
}

func TestCancelledContextStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	runner := &scriptedRunner{}
	s := &Scheduler{Runner: runner, Concurrency: 1}
	state := s.Run(ctx, []string{"/m/a.mkv", "/m/b.mkv"})

	if len(runner.processed) != 0 {
		t.Fatalf("expected no dispatch after cancel, runner saw %v", runner.processed)
	}
	if state.Completed() != 0 {
		t.Fatalf("completed = %d, want 0", state.Completed())
	}
}

func TestProgressCallback(t *testing.T) {
	runner := &scriptedRunner{}
	var mu sync.Mutex
	var calls []int
	s := &Scheduler{
		Runner:      runner,
		Concurrency: 1,
		OnProgress: func(completed, total int, outcome processor.Outcome) {
			mu.Lock()
			calls = append(calls, completed)
			mu.Unlock()
		},
	}

	s.Run(t.Context(), []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv"})
	if !reflect.DeepEqual(calls, []int{1, 2, 3}) {
		t.Fatalf("progress calls = %v", calls)
	}
}

func TestResumeAcrossRunsWithStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	files := []string{"/m/a.mkv", "/m/b.mkv"}

	first := &scriptedRunner{}
	s := &Scheduler{Runner: first, Aggregator: report.NewAggregator(), Journal: store, Concurrency: 1}
	s.Run(t.Context(), files)
	if len(first.processed) != 2 {
		t.Fatalf("first run processed %v, want both files", first.processed)
	}

	second := &scriptedRunner{}
	agg := report.NewAggregator()
	s = &Scheduler{Runner: second, Aggregator: agg, Journal: store, Concurrency: 1}
	state := s.Run(t.Context(), files)
	if len(second.processed) != 0 {
		t.Fatalf("second run reprocessed %v", second.processed)
	}
	if state.ResumeSkipped != 2 {
		t.Fatalf("resume skipped = %d, want 2", state.ResumeSkipped)
	}
	if summary := agg.Summary(); summary.SkippedExists != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestDryRunOutcomesNotJournaled(t *testing.T) {
	files := []string{"/m/a.mkv", "/m/b.mkv"}
	journal := newMemoryJournal()

	dry := &scriptedRunner{dryRun: true}
	s := &Scheduler{Runner: dry, Journal: journal, Concurrency: 1}
	s.Run(t.Context(), files)
	if done := journal.Load(t.Context()); len(done) != 0 {
		t.Fatalf("dry run journaled %v, want nothing", done)
	}

	// A real run after the dry run must still process every file.
	second := &scriptedRunner{}
	s = &Scheduler{Runner: second, Journal: journal, Concurrency: 1}
	state := s.Run(t.Context(), files)
	if len(second.processed) != 2 {
		t.Fatalf("real run processed %v, want both files", second.processed)
	}
	if state.ResumeSkipped != 0 {
		t.Fatalf("resume skipped = %d, want 0", state.ResumeSkipped)
	}
	if done := journal.Load(t.Context()); len(done) != 2 {
		t.Fatalf("real run journaled %v, want both files", done)
	}
}
