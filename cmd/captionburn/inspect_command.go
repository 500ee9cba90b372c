package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"captionburn/internal/config"
	"captionburn/internal/identifier"
	"captionburn/internal/media/ffprobe"
	"captionburn/internal/services/ytdlp"
	"captionburn/internal/staging"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <url|file>",
		Short: "Probe a video file or URL and show its streams",
		Long: "inspect probes a local media file with ffprobe and prints its container\n" +
			"and stream layout. Given a YouTube URL instead of a file, the video is\n" +
			"downloaded to a scratch workspace, probed, and the workspace removed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := args[0]
			if _, statErr := os.Stat(target); statErr == nil {
				return inspectFile(cmd, cfg, target)
			}

			videoID, err := identifier.Resolve(target)
			if err != nil {
				return err
			}
			workspace, err := staging.NewWorkspace(cfg.Paths.StagingDir)
			if err != nil {
				return err
			}
			defer func() { _ = workspace.Remove() }()

			client := ytdlp.NewCLI(
				ytdlp.WithBinary(cfg.Fetch.Binary),
				ytdlp.WithFormat(cfg.Fetch.Format),
			)
			download, err := client.Fetch(cmd.Context(), videoID, workspace.Dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Title: %s\n", download.Title)
			return inspectFile(cmd, cfg, download.Path)
		},
	}
}

func inspectFile(cmd *cobra.Command, cfg *config.Config, path string) error {
	result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
	if duration := result.DurationSeconds(); duration > 0 {
		fmt.Fprintf(out, "Duration: %.2fs\n", duration)
	}

	rows := make([][]string, 0, len(result.Streams))
	for _, stream := range result.Streams {
		detail := ""
		switch {
		case stream.Width > 0 || stream.Height > 0:
			detail = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		case stream.Channels > 0:
			detail = fmt.Sprintf("%d ch", stream.Channels)
		}
		rows = append(rows, []string{
			strconv.Itoa(stream.Index),
			stream.CodecType,
			stream.CodecName,
			detail,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Type", "Codec", "Detail"}, rows, []columnAlignment{alignRight}))
	return nil
}
