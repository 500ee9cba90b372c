package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"captionburn/internal/logging"
	"captionburn/internal/pipeline"
	"captionburn/internal/transcript"
)

const timeRounding = 100 * time.Millisecond

func runBurn(cmd *cobra.Command, cmdCtx *commandContext, url string, flags burnFlags) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}

	if dir := strings.TrimSpace(flags.tempDir); dir != "" {
		cfg.Paths.StagingDir = dir
	}

	var cache *transcript.Cache
	if cfg.Transcript.CacheEnabled {
		cache, err = transcript.OpenCache(cfg.Paths.CacheDir)
		if err != nil {
			logger.Warn("transcript cache unavailable; continuing without it",
				logging.String("cache_dir", cfg.Paths.CacheDir),
				logging.Error(err),
			)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, logger, cache)
	result, err := runner.Run(ctx, pipeline.Request{
		URL:        url,
		Language:   flags.language,
		OutputPath: flags.output,
		Timeout:    flags.timeout,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Burned %d captions into %s\n", result.CueCount, result.OutputPath)
	if result.DroppedSegments > 0 {
		fmt.Fprintf(out, "Dropped %d empty caption segments\n", result.DroppedSegments)
	}
	fmt.Fprintf(out, "Finished in %s\n", result.Elapsed.Round(timeRounding))
	return nil
}
