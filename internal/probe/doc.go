// Package probe inspects media containers for embedded subtitle tracks.
//
// Two adapters cover the supported container families: mkvmerge JSON output
// for Matroska files and ffprobe JSON output for everything else. Both
// normalize their tool's stream metadata into media.Track descriptors,
// deriving forced/SDH/commentary flags from container disposition plus track
// title heuristics.
package probe
