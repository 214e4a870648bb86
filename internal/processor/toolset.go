package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"sublift/internal/media"
	"sublift/internal/subsync"
)

// Prober inspects a container for subtitle tracks.
type Prober interface {
	Probe(ctx context.Context, path string) ([]media.Track, error)
}

// Extractor writes one subtitle track to dest. Implementations must not
// leave a partial dest file behind on failure.
type Extractor interface {
	Extract(ctx context.Context, source string, track media.Track, dest string) error
}

// Converter rewrites a text subtitle file into another format.
type Converter interface {
	Convert(ctx context.Context, path, format string) (string, error)
}

// OCR turns a bitmap subtitle file into SubRip text.
type OCR interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Syncer measures and optionally corrects subtitle timing drift.
type Syncer interface {
	Sync(ctx context.Context, mediaPath, subtitlePath string, apply bool) (subsync.Result, error)
}

// Toolkit pairs the prober and extractor for one container family.
type Toolkit struct {
	Prober    Prober
	Extractor Extractor
}

func (t Toolkit) complete() bool {
	return t.Prober != nil && t.Extractor != nil
}

// Toolset routes files to the toolkit that handles their container format.
// Matroska goes through the mkvtoolnix pair, everything else through ffmpeg.
type Toolset struct {
	MKV    Toolkit
	FFmpeg Toolkit
}

// ForFile returns the toolkit for path, or an error when no configured
// toolkit covers its container format.
func (t Toolset) ForFile(path string) (Toolkit, error) {
	kit := t.FFmpeg
	if strings.EqualFold(filepath.Ext(path), ".mkv") {
		kit = t.MKV
	}
	if !kit.complete() {
		return Toolkit{}, fmt.Errorf("no extraction tool available for %s", filepath.Ext(path))
	}
	return kit, nil
}
