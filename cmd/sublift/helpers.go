package main

import (
	"sublift/internal/config"
	"sublift/internal/deps"
	"sublift/internal/extract"
	"sublift/internal/probe"
	"sublift/internal/processor"
	"sublift/internal/subsync"
)

func buildToolset(cfg *config.Config, retries int) processor.Toolset {
	attempts := retries + 1
	return processor.Toolset{
		MKV: processor.Toolkit{
			Prober:    probe.MKVMerge{Binary: cfg.Tools.MKVMerge},
			Extractor: extract.MKVExtract{Binary: cfg.Tools.MKVExtract, Attempts: attempts},
		},
		FFmpeg: processor.Toolkit{
			Prober:    probe.FFprobe{Binary: cfg.Tools.FFprobe},
			Extractor: extract.FFmpegExtract{Binary: cfg.Tools.FFmpeg, Attempts: attempts},
		},
	}
}

func toolStatuses(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(
		cfg.Tools.MKVMerge,
		cfg.Tools.MKVExtract,
		cfg.Tools.FFprobe,
		cfg.Tools.FFmpeg,
		cfg.Tools.FFSubsync,
		cfg.Tools.PGSRip,
	))
}

func available(statuses []deps.Status, name string) bool {
	for _, status := range statuses {
		if status.Name == name {
			return status.Available
		}
	}
	return false
}

func buildOCR(cfg *config.Config, statuses []deps.Status) processor.OCR {
	if !available(statuses, "pgsrip") {
		return nil
	}
	return extract.PGSRip{Binary: cfg.Tools.PGSRip}
}

func buildSyncer(cfg *config.Config, statuses []deps.Status) processor.Syncer {
	if cfg.Sync.Mode == "off" || !available(statuses, "ffsubsync") {
		return nil
	}
	return subsync.Syncer{Binary: cfg.Tools.FFSubsync, ThresholdSeconds: cfg.Sync.ThresholdSeconds}
}
