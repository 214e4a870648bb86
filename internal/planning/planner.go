package planning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sublift/internal/language"
	"sublift/internal/media"
)

// Recognized sidecar subtitle extensions, used when probing for outputs a
// previous run (possibly with different settings) may have written.
var subtitleExtensions = []string{"srt", "ass", "ssa", "sup", "sub"}

// Historical ordinal bound for the pre-existence candidate set.
const maxOrdinalCandidate = 9

// Options configures output path computation for one run.
type Options struct {
	// OutputRoot, when set, roots all outputs there instead of next to the
	// source file.
	OutputRoot string
	// PreserveStructure mirrors the source path relative to ScanRoot under
	// OutputRoot. Without it all outputs land flat in OutputRoot, which makes
	// cross-directory collisions possible.
	PreserveStructure bool
	// ScanRoot is the directory the discovery pass walked.
	ScanRoot string
	// Overwrite bypasses every pre-existence check.
	Overwrite bool
}

// Target pairs one selected track with its computed output path. Ordinal is
// 1-based within the language group, or 0 when the group has a single track.
type Target struct {
	Track    media.Track
	Language language.Code
	Ordinal  int
	Path     string
	// Err records a per-target planning failure (unknown codec). The target
	// is skipped; sibling targets are unaffected.
	Err error
}

// Planner computes output paths and tracks claimed targets for collision
// detection. Safe for concurrent use via the claims registry.
type Planner struct {
	opts   Options
	claims *claimRegistry
}

func NewPlanner(opts Options) *Planner {
	return &Planner{opts: opts, claims: newClaimRegistry()}
}

// PlanGroup computes targets for one language group in selector order.
// Individual unknown-codec failures are carried on the target, not returned.
func (p *Planner) PlanGroup(sourceFile string, code language.Code, tracks []media.Track) ([]Target, error) {
	destDir, err := p.destDir(sourceFile)
	if err != nil {
		return nil, err
	}
	stem := stemOf(sourceFile)

	targets := make([]Target, 0, len(tracks))
	for i, track := range tracks {
		target := Target{Track: track, Language: code}
		if len(tracks) > 1 {
			target.Ordinal = i + 1
		}
		ext, extErr := track.Codec.Extension()
		if extErr != nil {
			target.Err = fmt.Errorf("track %d: %w", track.Index, extErr)
			targets = append(targets, target)
			continue
		}
		target.Path = filepath.Join(destDir, outputName(stem, code, target.Ordinal, ext))
		targets = append(targets, target)
	}
	return targets, nil
}

// Claim registers sourceFile as the owner of outputPath. A second claim by a
// different source reports ErrPathCollision; the caller records the error and
// skips the target instead of overwriting.
func (p *Planner) Claim(sourceFile, outputPath string) error {
	return p.claims.claim(sourceFile, outputPath)
}

// Satisfied reports whether an output for (sourceFile, code) already exists
// under any recognized naming variant. Always false in overwrite mode.
func (p *Planner) Satisfied(sourceFile string, code language.Code) (bool, error) {
	if p.opts.Overwrite {
		return false, nil
	}
	destDir, err := p.destDir(sourceFile)
	if err != nil {
		return false, err
	}
	for _, name := range CandidateNames(stemOf(sourceFile), code) {
		if _, statErr := os.Stat(filepath.Join(destDir, name)); statErr == nil {
			return true, nil
		}
	}
	return false, nil
}

// TargetExists reports whether the exact planned path already exists.
// Always false in overwrite mode.
func (p *Planner) TargetExists(target Target) bool {
	if p.opts.Overwrite || target.Path == "" {
		return false
	}
	_, err := os.Stat(target.Path)
	return err == nil
}

// CandidateNames enumerates every filename the naming rule could have
// produced for (stem, code): the singular form and ordinals 1..9, across all
// recognized subtitle extensions.
func CandidateNames(stem string, code language.Code) []string {
	names := make([]string, 0, len(subtitleExtensions)*(maxOrdinalCandidate+1))
	for _, ext := range subtitleExtensions {
		names = append(names, outputName(stem, code, 0, ext))
	}
	for ordinal := 1; ordinal <= maxOrdinalCandidate; ordinal++ {
		for _, ext := range subtitleExtensions {
			names = append(names, outputName(stem, code, ordinal, ext))
		}
	}
	return names
}

func (p *Planner) destDir(sourceFile string) (string, error) {
	if strings.TrimSpace(p.opts.OutputRoot) == "" {
		return filepath.Dir(sourceFile), nil
	}
	if !p.opts.PreserveStructure {
		return p.opts.OutputRoot, nil
	}
	rel, err := filepath.Rel(p.opts.ScanRoot, filepath.Dir(sourceFile))
	if err != nil {
		return "", fmt.Errorf("mirror source structure: %w", err)
	}
	return filepath.Join(p.opts.OutputRoot, rel), nil
}

func outputName(stem string, code language.Code, ordinal int, ext string) string {
	if ordinal > 0 {
		return fmt.Sprintf("%s.%s.%d.%s", stem, code, ordinal, ext)
	}
	return fmt.Sprintf("%s.%s.%s", stem, code, ext)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
