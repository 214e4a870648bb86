package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"sublift/internal/config"
	"sublift/internal/deps"
	"sublift/internal/discover"
	"sublift/internal/extract"
	"sublift/internal/logging"
	"sublift/internal/planning"
	"sublift/internal/processor"
	"sublift/internal/report"
	"sublift/internal/resume"
	"sublift/internal/scheduler"
	"sublift/internal/selection"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		languages         []string
		includeForced     bool
		includeSDH        bool
		excludeCommentary bool
		titleFilter       string
		outputDir         string
		preserveStructure bool
		overwrite         bool
		concurrency       int
		retries           int
		convertTo         string
		syncMode          string
		dryRun            bool
		resumeRun         bool
		reportFormat      string
		noProgress        bool
	)

	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "Extract subtitle tracks from media files under a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFlagOverride(cmd, "lang", func() { cfg.Extraction.Languages = languages })
			applyFlagOverride(cmd, "forced", func() { cfg.Extraction.IncludeForced = includeForced })
			applyFlagOverride(cmd, "sdh", func() { cfg.Extraction.IncludeSDH = includeSDH })
			applyFlagOverride(cmd, "exclude-commentary", func() { cfg.Extraction.ExcludeCommentary = excludeCommentary })
			applyFlagOverride(cmd, "title-filter", func() { cfg.Extraction.TitleFilter = titleFilter })
			applyFlagOverride(cmd, "output", func() { cfg.Paths.OutputDir = outputDir })
			applyFlagOverride(cmd, "preserve-structure", func() { cfg.Paths.PreserveStructure = preserveStructure })
			applyFlagOverride(cmd, "overwrite", func() { cfg.Extraction.Overwrite = overwrite })
			applyFlagOverride(cmd, "concurrency", func() { cfg.Extraction.Concurrency = concurrency })
			applyFlagOverride(cmd, "retries", func() { cfg.Extraction.Retries = retries })
			applyFlagOverride(cmd, "convert-to", func() { cfg.Extraction.ConvertTo = convertTo })
			applyFlagOverride(cmd, "sync", func() { cfg.Sync.Mode = syncMode })
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			files, err := discover.Scan(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "No media files found under %s\n", root)
				return nil
			}

			statuses := toolStatuses(cfg)
			if err := deps.Preflight(files, statuses); err != nil {
				return err
			}

			policy, err := selection.NewPolicy(
				cfg.Extraction.Languages,
				cfg.Extraction.IncludeForced,
				cfg.Extraction.IncludeSDH,
				cfg.Extraction.ExcludeCommentary,
				cfg.Extraction.TitleFilter,
			)
			if err != nil {
				return err
			}

			planner := planning.NewPlanner(planning.Options{
				OutputRoot:        cfg.Paths.OutputDir,
				PreserveStructure: cfg.Paths.PreserveStructure,
				ScanRoot:          root,
				Overwrite:         cfg.Extraction.Overwrite,
			})

			proc := &processor.Processor{
				Tools:         buildToolset(cfg, cfg.Extraction.Retries),
				Policy:        policy,
				Planner:       planner,
				Converter:     converterFor(cfg),
				OCR:           buildOCR(cfg, statuses),
				Syncer:        buildSyncer(cfg, statuses),
				ConvertFormat: cfg.Extraction.ConvertTo,
				Sync:          processor.SyncMode(cfg.Sync.Mode),
				DryRun:        dryRun,
				Logger:        logger,
			}

			var journal scheduler.Journal
			if resumeRun {
				store, err := resume.Open(cfg.Paths.ResumeDB, logger)
				if err != nil {
					return err
				}
				defer store.Close()
				journal = store
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			agg := report.NewAggregator()
			sched := &scheduler.Scheduler{
				Runner:      proc,
				Aggregator:  agg,
				Journal:     journal,
				Concurrency: cfg.Extraction.Concurrency,
				Logger:      logger,
				OnProgress:  progressReporter(len(files), noProgress),
			}

			state := sched.Run(runCtx, files)

			if cfg.Extraction.ConvertTo == "srt" && !dryRun {
				ocrSidecars(runCtx, out, root, buildOCR(cfg, statuses), logger)
			}

			summary := agg.Summary()
			printSummary(out, state, summary)

			if reportFormat != "" {
				rep := report.Build(state.RunID, agg)
				path, err := writeReport(cfg.Paths.ReportDir, reportFormat, rep)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Report written to %s\n", path)
			}

			if summary.Errors > 0 {
				return fmt.Errorf("%d of %d files had errors", summary.Errors, summary.Processed)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&languages, "lang", "l", nil, "Languages to extract (2-letter, 3-letter, or full name)")
	flags.BoolVar(&includeForced, "forced", true, "Include forced tracks")
	flags.BoolVar(&includeSDH, "sdh", true, "Include SDH tracks")
	flags.BoolVar(&excludeCommentary, "exclude-commentary", false, "Skip commentary tracks")
	flags.StringVar(&titleFilter, "title-filter", "", "Only tracks whose title contains this substring")
	flags.StringVarP(&outputDir, "output", "o", "", "Output directory (default: next to each source)")
	flags.BoolVar(&preserveStructure, "preserve-structure", false, "Mirror source directory layout under --output")
	flags.BoolVar(&overwrite, "overwrite", false, "Overwrite existing subtitle files")
	flags.IntVarP(&concurrency, "concurrency", "j", 1, "Files processed in parallel")
	flags.IntVar(&retries, "retries", 2, "Extra attempts per failed tool invocation")
	flags.StringVar(&convertTo, "convert-to", "", "Convert written subtitles to srt or ass")
	flags.StringVar(&syncMode, "sync", "off", "Timing alignment: off, check, or fix")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be extracted without writing")
	flags.BoolVar(&resumeRun, "resume", false, "Skip files completed by a previous run")
	flags.StringVar(&reportFormat, "report", "", "Write a run report: json or csv")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

func applyFlagOverride(cmd *cobra.Command, name string, apply func()) {
	if cmd.Flags().Changed(name) {
		apply()
	}
}

// progressReporter renders a terminal progress bar, or nothing when stderr
// is not a tty.
func progressReporter(total int, disabled bool) scheduler.Progress {
	if disabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return func(completed, totalFiles int, outcome processor.Outcome) {
		_ = bar.Add(1)
	}
}

// ocrSidecars runs OCR over leftover .sup files under root that have no
// SubRip sibling yet. Pre-existing bitmap sidecars ride along with the srt
// conversion pass instead of requiring a separate invocation.
func ocrSidecars(ctx context.Context, out io.Writer, root string, ocr processor.OCR, logger *slog.Logger) {
	sidecars, err := extract.Sidecars(root)
	if err != nil {
		logger.Warn("sidecar scan failed", logging.String("root", root), logging.Error(err))
		return
	}
	if len(sidecars) == 0 {
		return
	}
	if ocr == nil {
		logger.Warn("bitmap sidecars present but no ocr tool configured",
			logging.Int("count", len(sidecars)))
		return
	}
	for _, sidecar := range sidecars {
		srt, err := ocr.Recognize(ctx, sidecar)
		if err != nil {
			logger.Warn("sidecar ocr failed", logging.String("file", sidecar), logging.Error(err))
			continue
		}
		fmt.Fprintf(out, "OCR %s -> %s\n", sidecar, srt)
	}
}

func converterFor(cfg *config.Config) processor.Converter {
	if cfg.Extraction.ConvertTo == "" {
		return nil
	}
	return extract.FFmpegConverter{Binary: cfg.Tools.FFmpeg}
}

func writeReport(dir, format string, rep report.Report) (string, error) {
	switch format {
	case "json":
		return report.WriteJSON(dir, rep)
	case "csv":
		return report.WriteCSV(dir, rep)
	default:
		return "", fmt.Errorf("unknown report format %q (use json or csv)", format)
	}
}

func printSummary(out io.Writer, state *scheduler.RunState, summary report.Summary) {
	rows := [][]string{
		{"Processed", strconv.Itoa(summary.Processed)},
		{"Extracted", strconv.Itoa(summary.Extracted)},
		{"Skipped (exists)", strconv.Itoa(summary.SkippedExists)},
		{"Skipped (no match)", strconv.Itoa(summary.SkippedNoMatch)},
		{"Errors", strconv.Itoa(summary.Errors)},
		{"Tracks written", strconv.Itoa(summary.TracksWritten)},
	}
	for _, code := range summary.Languages() {
		rows = append(rows, []string{"  " + string(code), strconv.Itoa(summary.PerLanguage[code])})
	}
	rows = append(rows, []string{"Elapsed", state.Elapsed().Round(time.Millisecond).String()})

	fmt.Fprintln(out, renderTable([]string{"Summary", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
}
