package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sublift/internal/logging"
	"sublift/internal/planning"
	"sublift/internal/selection"
)

// SyncMode controls the timing-alignment pass over newly written text
// subtitles.
type SyncMode string

const (
	SyncOff   SyncMode = "off"
	SyncCheck SyncMode = "check"
	SyncFix   SyncMode = "fix"
)

// Processor extracts subtitles from one file at a time. A single Processor
// is shared by all workers of a run; it holds no per-file state.
type Processor struct {
	Tools   Toolset
	Policy  selection.Policy
	Planner *planning.Planner

	// Optional post-processing collaborators.
	Converter Converter
	OCR       OCR
	Syncer    Syncer

	// ConvertFormat, when set, converts every written track to this format
	// ("srt" or "ass"). Bitmap tracks are OCRed first.
	ConvertFormat string
	Sync          SyncMode
	// DryRun records intended writes without invoking any tool past the probe.
	DryRun bool

	Logger *slog.Logger
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}

// Process runs the probe-select-plan-extract pipeline for sourceFile.
func (p *Processor) Process(ctx context.Context, sourceFile string) Outcome {
	started := time.Now()
	log := logging.WithComponent(p.logger(), "processor")

	kit, err := p.Tools.ForFile(sourceFile)
	if err != nil {
		return ErrorOutcome(sourceFile, time.Since(started), err)
	}

	tracks, err := kit.Prober.Probe(ctx, sourceFile)
	if err != nil {
		log.Warn("probe failed", logging.String("file", sourceFile), logging.Error(err))
		return ErrorOutcome(sourceFile, time.Since(started), err)
	}

	selected := selection.Select(tracks, p.Policy)
	outcome := Outcome{
		Source:     sourceFile,
		Filtered:   selected.Filtered,
		Unresolved: selected.Unresolved,
		DryRun:     p.DryRun,
	}
	if selected.Empty() {
		outcome.Status = StatusSkippedNoMatch
		outcome.Elapsed = time.Since(started)
		log.Debug("no matching tracks",
			logging.String("file", sourceFile),
			logging.Int("filtered", selected.Filtered))
		return outcome
	}

	for _, code := range selected.Languages {
		group := selected.Groups[code]
		targets, planErr := p.Planner.PlanGroup(sourceFile, code, group)
		if planErr != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: plan %s: %v", sourceFile, code, planErr))
			continue
		}

		satisfied, satErr := p.Planner.Satisfied(sourceFile, code)
		if satErr != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: check existing %s: %v", sourceFile, code, satErr))
			continue
		}

		for _, target := range targets {
			result := TrackResult{Language: code, Ordinal: target.Ordinal, OutputPath: target.Path}
			if target.Err != nil {
				result.Err = target.Err
			} else if claimErr := p.Planner.Claim(sourceFile, target.Path); claimErr != nil {
				// Claim before the pre-existence skip: a flat-mode collision
				// must surface even when an earlier file already wrote the
				// contested path.
				result.Err = claimErr
			} else if satisfied {
				result.Existed = true
			} else {
				result = p.extractTarget(ctx, log, sourceFile, target, result)
			}
			if result.Err != nil {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", sourceFile, result.Err))
			}
			outcome.Tracks = append(outcome.Tracks, result)
		}
	}

	outcome.Status = deriveStatus(outcome)
	outcome.Elapsed = time.Since(started)
	log.Debug("file processed",
		logging.String("file", sourceFile),
		logging.String("status", string(outcome.Status)),
		logging.Int("written", outcome.WrittenCount()),
		logging.Duration("elapsed", outcome.Elapsed))
	return outcome
}

func (p *Processor) extractTarget(ctx context.Context, log *slog.Logger, sourceFile string, target planning.Target, result TrackResult) TrackResult {
	if p.DryRun {
		result.Written = true
		log.Info("would extract",
			logging.String("file", sourceFile),
			logging.Int("track", target.Track.Index),
			logging.String("output", target.Path))
		return result
	}

	if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
		result.Err = fmt.Errorf("create output dir: %w", err)
		return result
	}

	kit, err := p.Tools.ForFile(sourceFile)
	if err != nil {
		result.Err = err
		return result
	}
	if err := kit.Extractor.Extract(ctx, sourceFile, target.Track, target.Path); err != nil {
		result.Err = err
		return result
	}
	result.Written = true

	finalPath, postErr := p.postProcess(ctx, sourceFile, target, result.OutputPath)
	result.OutputPath = finalPath
	if postErr != nil {
		// Extraction itself succeeded; the post step failure rides along.
		result.Err = postErr
	}
	return result
}

// postProcess applies the optional conversion, OCR, and sync passes to a
// freshly written subtitle and returns its final path.
func (p *Processor) postProcess(ctx context.Context, sourceFile string, target planning.Target, path string) (string, error) {
	if p.ConvertFormat != "" {
		converted, err := p.convert(ctx, target, path)
		if err != nil {
			return path, err
		}
		path = converted
	}
	if p.Sync != SyncOff && p.Syncer != nil && isTextSubtitle(path) {
		result, err := p.Syncer.Sync(ctx, sourceFile, path, p.Sync == SyncFix)
		if err != nil {
			return path, err
		}
		logging.WithComponent(p.logger(), "processor").Debug("sync pass",
			logging.String("subtitle", path),
			logging.Any("offset_seconds", result.OffsetSeconds),
			logging.Bool("applied", result.Applied))
	}
	return path, nil
}

func (p *Processor) convert(ctx context.Context, target planning.Target, path string) (string, error) {
	if target.Track.Codec.ImageBased() {
		if p.OCR == nil {
			return "", fmt.Errorf("track %d needs ocr for %s conversion: no ocr tool configured", target.Track.Index, p.ConvertFormat)
		}
		recognized, err := p.OCR.Recognize(ctx, path)
		if err != nil {
			return "", err
		}
		path = recognized
	}
	if p.Converter == nil || strings.EqualFold(filepath.Ext(path), "."+p.ConvertFormat) {
		return path, nil
	}
	return p.Converter.Convert(ctx, path, p.ConvertFormat)
}

func isTextSubtitle(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".ass", ".ssa":
		return true
	default:
		return false
	}
}

func deriveStatus(outcome Outcome) Status {
	written, existed := 0, 0
	for _, track := range outcome.Tracks {
		if track.Written {
			written++
		}
		if track.Existed {
			existed++
		}
	}
	switch {
	case written > 0:
		return StatusExtracted
	case len(outcome.Errors) > 0:
		return StatusError
	case existed > 0:
		return StatusSkippedExists
	default:
		return StatusSkippedNoMatch
	}
}
