// Package extract drives the external tools that pull subtitle streams out
// of media containers and post-process the results.
//
// Matroska files go through mkvextract; everything else uses ffmpeg stream
// copy. Text-format conversion is handled by ffmpeg, bitmap OCR by pgsrip.
// Tool invocations retry with linear backoff and remove partial output so a
// failed attempt never leaves a truncated subtitle file behind.
package extract
