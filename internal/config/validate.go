package config

import (
	"errors"
	"fmt"
	"strings"

	"sublift/internal/language"
)

// normalize expands paths and canonicalizes enum-like string fields.
func (c *Config) normalize() error {
	var err error
	for _, field := range []*string{&c.Paths.OutputDir, &c.Paths.LogDir, &c.Paths.ResumeDB, &c.Paths.ReportDir} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		if *field, err = expandPath(trimmed); err != nil {
			return err
		}
	}

	c.Extraction.TitleFilter = strings.TrimSpace(c.Extraction.TitleFilter)
	c.Extraction.ConvertTo = strings.ToLower(strings.TrimSpace(c.Extraction.ConvertTo))
	c.Sync.Mode = strings.ToLower(strings.TrimSpace(c.Sync.Mode))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// Validate ensures the configuration is usable. Violations surface before
// any file is touched.
func (c *Config) Validate() error {
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtraction() error {
	if len(c.Extraction.Languages) == 0 {
		return errors.New("extraction.languages must list at least one language")
	}
	if _, err := language.NormalizeSet(c.Extraction.Languages); err != nil {
		return fmt.Errorf("extraction.languages: %w", err)
	}
	if c.Extraction.Concurrency < 1 {
		return errors.New("extraction.concurrency must be at least 1")
	}
	if c.Extraction.Retries < 0 {
		return errors.New("extraction.retries must not be negative")
	}
	switch c.Extraction.ConvertTo {
	case "", "srt", "ass":
	default:
		return fmt.Errorf("extraction.convert_to must be \"srt\" or \"ass\", got %q", c.Extraction.ConvertTo)
	}
	if c.Paths.PreserveStructure && strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.preserve_structure requires paths.output_dir")
	}
	return nil
}

func (c *Config) validateSync() error {
	switch c.Sync.Mode {
	case "off", "check", "fix":
	default:
		return fmt.Errorf("sync.mode must be off, check, or fix, got %q", c.Sync.Mode)
	}
	if c.Sync.ThresholdSeconds < 0 {
		return errors.New("sync.threshold_seconds must not be negative")
	}
	if c.Sync.Mode != "off" && strings.TrimSpace(c.Tools.FFSubsync) == "" {
		return errors.New("sync requires tools.ffsubsync")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
