package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FFmpegConverter converts text subtitle files between formats.
type FFmpegConverter struct {
	Binary string

	run commandRunner
}

// Convert rewrites the subtitle at path into the requested format (an
// extension such as "srt" or "ass") and returns the new path. When the file
// already has the target extension it is returned unchanged. The source file
// is removed after a successful conversion.
func (c FFmpegConverter) Convert(ctx context.Context, path, format string) (string, error) {
	binary := strings.TrimSpace(c.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	run := c.run
	if run == nil {
		run = defaultCommandRunner
	}

	dest, changed := swapExtension(path, format)
	if !changed {
		return path, nil
	}
	if err := run(ctx, binary, "-y", "-v", "error", "-i", path, dest); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	os.Remove(path)
	return dest, nil
}

// PGSRip runs OCR over bitmap subtitle files via pgsrip.
type PGSRip struct {
	Binary   string
	Language string

	run commandRunner
}

// Recognize OCRs the bitmap subtitle at path and returns the path of the
// SubRip file pgsrip writes alongside it. The bitmap source is kept; callers
// decide whether to retain it.
func (p PGSRip) Recognize(ctx context.Context, path string) (string, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		return "", ErrOCRUnavailable
	}
	run := p.run
	if run == nil {
		run = defaultCommandRunner
	}

	args := []string{"--force"}
	if lang := strings.TrimSpace(p.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	args = append(args, path)
	if err := run(ctx, binary, args...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOCR, err)
	}

	dest, _ := swapExtension(path, "srt")
	if _, err := os.Stat(dest); err != nil {
		return "", fmt.Errorf("%w: no output at %s", ErrOCR, dest)
	}
	return dest, nil
}

func swapExtension(path, ext string) (string, bool) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	old := filepath.Ext(path)
	if old == "" {
		return path + "." + ext, true
	}
	if strings.EqualFold(old[1:], ext) {
		return path, false
	}
	return strings.TrimSuffix(path, old) + "." + ext, true
}
