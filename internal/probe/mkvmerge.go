package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"sublift/internal/media"
)

// MKVMerge probes Matroska containers via `mkvmerge -J`.
type MKVMerge struct {
	Binary string
}

type mkvIdentify struct {
	Tracks []mkvTrack `json:"tracks"`
}

type mkvTrack struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Codec      string `json:"codec"`
	Properties struct {
		Language       string `json:"language"`
		TrackName      string `json:"track_name"`
		ForcedTrack    bool   `json:"forced_track"`
		FlagHearing    bool   `json:"flag_hearing_impaired"`
		FlagCommentary bool   `json:"flag_commentary"`
	} `json:"properties"`
}

// Probe runs mkvmerge identification and returns the subtitle tracks found.
func (m MKVMerge) Probe(ctx context.Context, path string) ([]media.Track, error) {
	binary := strings.TrimSpace(m.Binary)
	if binary == "" {
		binary = "mkvmerge"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, probeError("mkvmerge", errors.New("empty path"))
	}

	cmd := exec.CommandContext(ctx, binary, "-J", path)
	output, err := cmd.Output()
	if err != nil {
		detail := commandDetail(err)
		return nil, probeError("mkvmerge", fmt.Errorf("%w: %s", err, detail))
	}
	return parseMKVMerge(output)
}

func parseMKVMerge(payload []byte) ([]media.Track, error) {
	var identify mkvIdentify
	if err := json.Unmarshal(payload, &identify); err != nil {
		return nil, probeError("mkvmerge", fmt.Errorf("parse: %w", err))
	}

	var tracks []media.Track
	for _, raw := range identify.Tracks {
		if !strings.EqualFold(raw.Type, "subtitles") {
			continue
		}
		track := media.Track{
			Index:       raw.ID,
			LanguageTag: raw.Properties.Language,
			Codec:       media.ParseCodec(raw.Codec),
			Title:       raw.Properties.TrackName,
			Forced:      raw.Properties.ForcedTrack,
			SDH:         raw.Properties.FlagHearing,
			Commentary:  raw.Properties.FlagCommentary,
		}
		track.ClassifyTitle()
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func commandDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}
