package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sublift/internal/resume"
)

func newResumeCommand(ctx *commandContext) *cobra.Command {
	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Inspect or clear the resume journal",
	}
	resumeCmd.AddCommand(newResumeShowCommand(ctx))
	resumeCmd.AddCommand(newResumeClearCommand(ctx))
	return resumeCmd
}

func newResumeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show how many files the journal records as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := resume.Open(cfg.Paths.ResumeDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Journal at %s records %d completed file(s)\n", cfg.Paths.ResumeDB, count)
			return nil
		},
	}
}

func newResumeClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all completed files so the next run starts fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := resume.Open(cfg.Paths.ResumeDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			cleared, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d journal entries\n", cleared)
			return nil
		},
	}
}
