package config

const (
	defaultLogDir        = "~/.local/share/sublift/logs"
	defaultResumeDB      = "~/.local/share/sublift/resume.db"
	defaultReportDir     = "~/.local/share/sublift/reports"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultConcurrency   = 1
	defaultRetries       = 2
	defaultSyncMode      = "off"
	defaultSyncThreshold = 0.5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Extraction: Extraction{
			Languages:     []string{"en"},
			IncludeForced: true,
			IncludeSDH:    true,
			Concurrency:   defaultConcurrency,
			Retries:       defaultRetries,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			ResumeDB:  defaultResumeDB,
			ReportDir: defaultReportDir,
		},
		Tools: Tools{
			MKVMerge:   "mkvmerge",
			MKVExtract: "mkvextract",
			FFprobe:    "ffprobe",
			FFmpeg:     "ffmpeg",
			FFSubsync:  "ffsubsync",
			PGSRip:     "pgsrip",
		},
		Sync: Sync{
			Mode:             defaultSyncMode,
			ThresholdSeconds: defaultSyncThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
