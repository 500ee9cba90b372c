package main

import (
	"time"

	"github.com/spf13/cobra"
)

type burnFlags struct {
	output   string
	language string
	tempDir  string
	timeout  time.Duration
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logFormatFlag string
	var logLevelFlag string
	var burn burnFlags

	ctx := newCommandContext(&configFlag, &logFormatFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "captionburn [flags] <url>",
		Short: "Burn YouTube captions into the downloaded video",
		Long: "captionburn downloads a YouTube video together with its caption track,\n" +
			"normalizes the caption timing, and burns the captions into the video as\n" +
			"hard overlays. The audio stream is copied untouched.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runBurn(cmd, ctx, args[0], burn)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: console or json (default: console on a terminal)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, or error")

	rootCmd.Flags().StringVarP(&burn.output, "output", "o", "", "Output file path (default: derived from the video title)")
	rootCmd.Flags().StringVarP(&burn.language, "language", "l", "en", "Caption language code to burn")
	rootCmd.Flags().StringVarP(&burn.tempDir, "temp-dir", "t", "", "Working directory for intermediate files")
	rootCmd.Flags().DurationVar(&burn.timeout, "timeout", 0, "Abort the whole run after this duration (e.g. 10m)")

	rootCmd.AddCommand(newLanguagesCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}
