// Package processor runs a single media file end to end: probe the
// container, select the wanted subtitle tracks, plan output paths, and
// invoke extraction per track, recording one Outcome per file.
//
// Track failures are isolated. A corrupt stream, an unplannable codec, or a
// failed post-processing step marks that track's result and moves on; only a
// probe failure stops a file outright.
package processor
