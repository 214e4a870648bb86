package subsync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// ErrSync marks a failed timing alignment run.
var ErrSync = errors.New("subtitle sync failed")

// Result reports what a sync pass measured and whether the synced file
// replaced the original.
type Result struct {
	OffsetSeconds float64
	Applied       bool
}

// Syncer runs ffsubsync against a media file and one of its extracted
// subtitles.
type Syncer struct {
	Binary string
	// ThresholdSeconds is the minimum absolute offset that counts as
	// drift. Measured offsets below it leave the subtitle untouched.
	ThresholdSeconds float64

	run func(ctx context.Context, name string, args ...string) (string, error)
}

var offsetPattern = regexp.MustCompile(`offset seconds:\s*(-?[0-9]+(?:\.[0-9]+)?)`)

// Sync measures the timing offset of subtitlePath against mediaPath. When
// apply is true and the offset meets the threshold, the synced output
// replaces the original file; otherwise the original is left as-is and only
// the measurement is returned.
func (s Syncer) Sync(ctx context.Context, mediaPath, subtitlePath string, apply bool) (Result, error) {
	binary := strings.TrimSpace(s.Binary)
	if binary == "" {
		binary = "ffsubsync"
	}
	run := s.run
	if run == nil {
		run = defaultOutputRunner
	}

	synced := subtitlePath + ".synced"
	defer os.Remove(synced)

	output, err := run(ctx, binary, mediaPath, "-i", subtitlePath, "-o", synced)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSync, err)
	}

	result := Result{OffsetSeconds: parseOffset(output)}
	if !apply || math.Abs(result.OffsetSeconds) < s.ThresholdSeconds {
		return result, nil
	}
	if err := os.Rename(synced, subtitlePath); err != nil {
		return Result{}, fmt.Errorf("%w: replace original: %w", ErrSync, err)
	}
	result.Applied = true
	return result, nil
}

func parseOffset(output string) float64 {
	match := offsetPattern.FindStringSubmatch(output)
	if match == nil {
		return 0
	}
	offset, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return offset
}

func defaultOutputRunner(ctx context.Context, name string, args ...string) (string, error) {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
