package compose

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"captionburn/internal/config"
	"captionburn/internal/fileutil"
	"captionburn/internal/logging"
	"captionburn/internal/overlay"
	"captionburn/internal/services"
)

type commandRunner func(ctx context.Context, binary string, args ...string) error

// Request describes one composition job.
type Request struct {
	VideoPath   string
	Descriptors []overlay.Descriptor
	Style       overlay.Style
	// WorkDir holds the generated subtitle script; the caller owns its
	// lifetime (it is the run workspace).
	WorkDir    string
	OutputPath string
}

// Result reports the outcome of a composition.
type Result struct {
	OutputPath   string
	OverlayCount int
	ScriptPath   string
}

// Engine merges a source video with timed overlays into a single burned-in
// output file.
type Engine struct {
	binary string
	codec  string
	crf    int
	preset string
	logger *slog.Logger
	run    commandRunner
}

// NewEngine constructs a composition engine from output config.
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	e := &Engine{
		binary: "ffmpeg",
		codec:  "libx264",
		crf:    18,
		preset: "medium",
		logger: logging.NewComponentLogger(logger, "compositor"),
		run:    defaultCommandRunner,
	}
	if cfg != nil {
		e.binary = cfg.FFmpegBinary()
		e.codec = cfg.Output.VideoCodec
		e.crf = cfg.Output.CRF
		e.preset = cfg.Output.Preset
	}
	return e
}

// WithCommandRunner injects a custom command runner for tests.
func (e *Engine) WithCommandRunner(r commandRunner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// Compose renders the overlays onto the video and writes the result to
// req.OutputPath. The write is atomic: ffmpeg targets a hidden temp file in
// the output directory which is renamed into place on success and removed on
// any failure. An empty descriptor set produces an unmodified copy of the
// source.
func (e *Engine) Compose(ctx context.Context, req Request) (Result, error) {
	if e == nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "engine not initialized", nil)
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "video path is required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "output path is required", nil)
	}
	if _, err := os.Stat(req.VideoPath); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "source video not found", err)
	}

	outDir := filepath.Dir(req.OutputPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "create output directory", err)
	}

	base := filepath.Base(req.OutputPath)
	ext := filepath.Ext(base)
	if ext == "" {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "output path has no container extension", nil)
	}
	stem := strings.TrimSuffix(base, ext)
	// Temp file keeps the real extension so ffmpeg picks the right muxer.
	tmpPath := filepath.Join(outDir, ".burn-"+stem+".tmp"+ext)
	defer os.Remove(tmpPath)

	if len(req.Descriptors) == 0 {
		if e.logger != nil {
			e.logger.Info("no captions to burn, copying source unchanged",
				logging.String("video", req.VideoPath))
		}
		if err := fileutil.CopyFile(req.VideoPath, tmpPath); err != nil {
			return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "copy", "copy source video", err)
		}
		if err := os.Rename(tmpPath, req.OutputPath); err != nil {
			return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "copy", "finalize output", err)
		}
		return Result{OutputPath: req.OutputPath}, nil
	}

	scriptPath := filepath.Join(req.WorkDir, "overlays.ass")
	script := buildScript(req.Descriptors, req.Style)
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "script", "write subtitle script", err)
	}

	args := []string{
		"-y", "-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", req.VideoPath,
		"-vf", "ass=" + escapeFilterValue(scriptPath),
		"-map", "0:v:0",
		"-map", "0:a?",
		"-c:v", e.codec,
		"-crf", strconv.Itoa(e.crf),
		"-preset", e.preset,
		"-c:a", "copy",
		tmpPath,
	}

	if e.logger != nil {
		e.logger.Debug("executing ffmpeg",
			logging.String("video", req.VideoPath),
			logging.Int("overlay_count", len(req.Descriptors)),
			logging.String("codec", e.codec),
			logging.String("output", req.OutputPath),
		)
	}

	if err := e.run(ctx, e.binary, args...); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "ffmpeg", "burn overlays", err)
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "ffmpeg", "no output produced", err)
	}
	if err := os.Rename(tmpPath, req.OutputPath); err != nil {
		return Result{}, services.Wrap(services.ErrRenderFailure, "composing", "", "finalize output", err)
	}

	return Result{
		OutputPath:   req.OutputPath,
		OverlayCount: len(req.Descriptors),
		ScriptPath:   scriptPath,
	}, nil
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, tail(string(output), 800))
	}
	return nil
}

// escapeFilterValue escapes a path for use inside an ffmpeg filter graph
// argument, where backslash, quote, colon, and comma are significant.
func escapeFilterValue(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`,`, `\,`,
		`[`, `\[`,
		`]`, `\]`,
	)
	return replacer.Replace(value)
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
