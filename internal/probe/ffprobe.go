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

// FFprobe probes non-Matroska containers via `ffprobe -show_streams`.
type FFprobe struct {
	Binary string
}

type ffprobeResult struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Tags        map[string]string `json:"tags"`
	Disposition struct {
		Forced          int `json:"forced"`
		HearingImpaired int `json:"hearing_impaired"`
		Comment         int `json:"comment"`
	} `json:"disposition"`
}

// Probe runs ffprobe stream inspection and returns the subtitle tracks found.
//
// Track indexes are relative positions within the subtitle streams, matching
// ffmpeg's `-map 0:s:N` selector, not absolute container stream indexes.
func (f FFprobe) Probe(ctx context.Context, path string) ([]media.Track, error) {
	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, probeError("ffprobe", errors.New("empty path"))
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := commandDetail(err)
		return nil, probeError("ffprobe", fmt.Errorf("%w: %s", err, detail))
	}
	return parseFFprobe(output)
}

func parseFFprobe(payload []byte) ([]media.Track, error) {
	var result ffprobeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, probeError("ffprobe", fmt.Errorf("parse: %w", err))
	}

	var tracks []media.Track
	for _, stream := range result.Streams {
		if !strings.EqualFold(stream.CodecType, "subtitle") {
			continue
		}
		track := media.Track{
			Index:       len(tracks),
			LanguageTag: stream.Tags["language"],
			Codec:       media.ParseCodec(stream.CodecName),
			Title:       stream.Tags["title"],
			Forced:      stream.Disposition.Forced != 0,
			SDH:         stream.Disposition.HearingImpaired != 0,
			Commentary:  stream.Disposition.Comment != 0,
		}
		track.ClassifyTitle()
		tracks = append(tracks, track)
	}
	return tracks, nil
}
