package processor

import (
	"time"

	"sublift/internal/language"
)

// Status classifies how a file's processing ended.
type Status string

const (
	// StatusExtracted means at least one track was newly written.
	StatusExtracted Status = "extracted"
	// StatusSkippedExists means every planned target already existed.
	StatusSkippedExists Status = "skipped-exists"
	// StatusSkippedNoMatch means no track matched the requested languages
	// and filters.
	StatusSkippedNoMatch Status = "skipped-no-match"
	// StatusError means the file produced errors and nothing was written.
	StatusError Status = "error"
)

// TrackResult records what happened to one planned target.
type TrackResult struct {
	Language   language.Code
	Ordinal    int
	OutputPath string
	// Written is set when the track was newly extracted, or would have been
	// in dry-run mode.
	Written bool
	// Existed is set when a pre-existing output satisfied the target.
	Existed bool
	Err     error
}

// Outcome is the result of processing one source file. Immutable once
// returned; the aggregator owns it from there.
type Outcome struct {
	Source string
	Status Status
	Tracks []TrackResult
	// Filtered counts tracks in requested languages rejected by the
	// forced/SDH/commentary/title rules, to tell "no tracks at all" apart
	// from "all tracks filtered out".
	Filtered int
	// Unresolved counts subtitle tracks whose language tag could not be
	// mapped to a catalog code.
	Unresolved int
	// DryRun marks an outcome that recorded intent without writing
	// anything. Dry-run outcomes must never reach the resume journal.
	DryRun  bool
	Errors  []string
	Elapsed time.Duration
}

// WrittenCount returns how many tracks were newly written.
func (o Outcome) WrittenCount() int {
	count := 0
	for _, track := range o.Tracks {
		if track.Written {
			count++
		}
	}
	return count
}

// ErrorOutcome builds an error Outcome for files that failed before any
// track work happened, such as a probe failure or a worker panic.
func ErrorOutcome(source string, elapsed time.Duration, err error) Outcome {
	return Outcome{
		Source:  source,
		Status:  StatusError,
		Errors:  []string{err.Error()},
		Elapsed: elapsed,
	}
}
