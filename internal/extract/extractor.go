package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sublift/internal/media"
)

// MKVExtract extracts subtitle tracks from Matroska containers.
type MKVExtract struct {
	Binary   string
	Attempts int

	run commandRunner
}

// Extract writes the given track to dest via mkvextract. The track index is
// the mkvmerge track ID.
func (m MKVExtract) Extract(ctx context.Context, source string, track media.Track, dest string) error {
	binary := strings.TrimSpace(m.Binary)
	if binary == "" {
		binary = "mkvextract"
	}
	run := m.run
	if run == nil {
		run = defaultCommandRunner
	}

	selector := strconv.Itoa(track.Index) + ":" + dest
	err := runWithRetries(ctx, m.Attempts, dest, func(ctx context.Context) error {
		return run(ctx, binary, source, "tracks", selector)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return nil
}

// FFmpegExtract extracts subtitle streams from non-Matroska containers.
type FFmpegExtract struct {
	Binary   string
	Attempts int

	run commandRunner
}

// Extract writes the given subtitle stream to dest via ffmpeg. The track
// index is the subtitle-relative stream position. MOV text streams are
// transcoded to SubRip since their dest extension is .srt; everything else
// is stream-copied.
func (f FFmpegExtract) Extract(ctx context.Context, source string, track media.Track, dest string) error {
	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	run := f.run
	if run == nil {
		run = defaultCommandRunner
	}

	codecArg := "copy"
	if track.Codec == media.CodecMovText {
		codecArg = "srt"
	}
	args := []string{
		"-y", "-v", "error",
		"-i", source,
		"-map", "0:s:" + strconv.Itoa(track.Index),
		"-c:s", codecArg,
		dest,
	}
	err := runWithRetries(ctx, f.Attempts, dest, func(ctx context.Context) error {
		return run(ctx, binary, args...)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return nil
}
