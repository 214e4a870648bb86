package report

import (
	"sort"
	"sync"

	"sublift/internal/language"
	"sublift/internal/processor"
)

// Summary is a point-in-time projection of aggregated run statistics.
type Summary struct {
	Processed      int                   `json:"processed"`
	Extracted      int                   `json:"extracted"`
	SkippedExists  int                   `json:"skipped_exists"`
	SkippedNoMatch int                   `json:"skipped_no_match"`
	Errors         int                   `json:"errors"`
	TracksWritten  int                   `json:"tracks_written"`
	PerLanguage    map[language.Code]int `json:"per_language"`
}

// Skipped returns the combined skip count across both skip statuses.
func (s Summary) Skipped() int {
	return s.SkippedExists + s.SkippedNoMatch
}

// Languages returns the per-language keys in sorted order for stable output.
func (s Summary) Languages() []language.Code {
	codes := make([]language.Code, 0, len(s.PerLanguage))
	for code := range s.PerLanguage {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Aggregator folds file outcomes into run totals. Safe for concurrent use;
// Add and Summary may interleave freely, so a live progress display can read
// totals mid-run.
type Aggregator struct {
	mu       sync.Mutex
	summary  Summary
	outcomes []processor.Outcome
}

func NewAggregator() *Aggregator {
	return &Aggregator{summary: Summary{PerLanguage: make(map[language.Code]int)}}
}

// Add folds one outcome into the totals. Commutative: any arrival order
// yields the same totals.
func (a *Aggregator) Add(outcome processor.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.outcomes = append(a.outcomes, outcome)
	a.summary.Processed++
	switch outcome.Status {
	case processor.StatusExtracted:
		a.summary.Extracted++
	case processor.StatusSkippedExists:
		a.summary.SkippedExists++
	case processor.StatusSkippedNoMatch:
		a.summary.SkippedNoMatch++
	case processor.StatusError:
		a.summary.Errors++
	}
	for _, track := range outcome.Tracks {
		if track.Written {
			a.summary.TracksWritten++
			a.summary.PerLanguage[track.Language]++
		}
	}
}

// Summary returns a snapshot of the current totals.
func (a *Aggregator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := a.summary
	snapshot.PerLanguage = make(map[language.Code]int, len(a.summary.PerLanguage))
	for code, count := range a.summary.PerLanguage {
		snapshot.PerLanguage[code] = count
	}
	return snapshot
}

// Outcomes returns a copy of every outcome added so far, in arrival order.
func (a *Aggregator) Outcomes() []processor.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]processor.Outcome(nil), a.outcomes...)
}
