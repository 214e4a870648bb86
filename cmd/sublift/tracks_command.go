package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"sublift/internal/config"
	"sublift/internal/discover"
	"sublift/internal/language"
	"sublift/internal/media"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <path>",
		Short: "List embedded subtitle tracks without extracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			toolset := buildToolset(cfg, 0)
			for _, file := range files {
				kit, err := toolset.ForFile(file)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", file, err)
					continue
				}
				tracks, err := kit.Prober.Probe(cmd.Context(), file)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", file, err)
					continue
				}

				fmt.Fprintln(out, file)
				if len(tracks) == 0 {
					fmt.Fprintln(out, "  no subtitle tracks")
					continue
				}
				fmt.Fprintln(out, renderTracksTable(tracks))
			}
			return nil
		},
	}
	return cmd
}

func renderTracksTable(tracks []media.Track) string {
	headers := []string{"Track", "Language", "Codec", "Title", "Forced", "SDH", "Commentary"}
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(track.Index),
			displayLanguage(track.LanguageTag),
			track.Codec.String(),
			track.Title,
			yesNo(track.Forced),
			yesNo(track.SDH),
			yesNo(track.Commentary),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
	return renderTable(headers, rows, aligns)
}

// displayLanguage renders a track language tag for humans. Tags the catalog
// knows get their display name; anything else is title-cased as-is.
func displayLanguage(tag string) string {
	if _, ok := language.Resolve(tag); ok {
		return language.DisplayName(tag)
	}
	if strings.TrimSpace(tag) == "" {
		return "Unknown"
	}
	return cases.Title(xlang.Und).String(strings.ToLower(strings.TrimSpace(tag)))
}
