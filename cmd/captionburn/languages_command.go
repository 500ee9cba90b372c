package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"captionburn/internal/identifier"
	"captionburn/internal/services/timedtext"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages <url>",
		Short: "List the caption tracks available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			videoID, err := identifier.Resolve(args[0])
			if err != nil {
				return err
			}

			client := timedtext.NewClient(
				timedtext.WithBaseURL(cfg.Transcript.BaseURL),
				timedtext.WithUserAgent(cfg.Transcript.UserAgent),
			)
			tracks, err := client.ListTracks(cmd.Context(), videoID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				source := "manual"
				if track.IsAutoGenerated() {
					source = "auto"
				}
				rows = append(rows, []string{track.LanguageCode, track.Name, source})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Code", "Name", "Source"}, rows, nil))
			return nil
		},
	}
}
