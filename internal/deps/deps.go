// Package deps verifies the external tools sublift shells out to.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrToolUnavailable reports that no extraction toolchain covers one of the
// discovered container formats. Fatal before scheduling begins.
var ErrToolUnavailable = errors.New("required tool unavailable")

// Requirement defines an external binary sublift relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the configured binaries.
func Requirements(mkvmerge, mkvextract, ffprobe, ffmpeg, ffsubsync, pgsrip string) []Requirement {
	return []Requirement{
		{Name: "mkvmerge", Command: mkvmerge, Description: "Matroska track identification"},
		{Name: "mkvextract", Command: mkvextract, Description: "Matroska subtitle extraction"},
		{Name: "ffprobe", Command: ffprobe, Description: "non-Matroska track identification"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "non-Matroska extraction and format conversion"},
		{Name: "ffsubsync", Command: ffsubsync, Description: "subtitle timing alignment", Optional: true},
		{Name: "pgsrip", Command: pgsrip, Description: "bitmap subtitle OCR", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Preflight verifies that an extraction toolchain exists for every
// discovered file. Matroska files need the mkvtoolnix pair; everything else
// needs the ffmpeg pair. Missing optional tools never fail preflight.
func Preflight(files []string, statuses []Status) error {
	available := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		available[status.Name] = status.Available
	}

	needsMKV, needsFFmpeg := false, false
	for _, file := range files {
		if strings.EqualFold(filepath.Ext(file), ".mkv") {
			needsMKV = true
		} else {
			needsFFmpeg = true
		}
	}

	if needsMKV && (!available["mkvmerge"] || !available["mkvextract"]) {
		return fmt.Errorf("%w: matroska files discovered but mkvtoolnix is missing", ErrToolUnavailable)
	}
	if needsFFmpeg && (!available["ffprobe"] || !available["ffmpeg"]) {
		return fmt.Errorf("%w: non-matroska files discovered but ffmpeg is missing", ErrToolUnavailable)
	}
	return nil
}
