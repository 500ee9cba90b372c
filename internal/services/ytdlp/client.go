package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"captionburn/internal/services"
)

var commandContext = exec.CommandContext

// Download reports the result of a completed video fetch.
type Download struct {
	Path  string
	Title string
}

// Client defines video download behaviour.
type Client interface {
	Fetch(ctx context.Context, videoID, destDir string) (Download, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithFormat overrides the default format selector.
func WithFormat(format string) Option {
	return func(c *CLI) {
		if format != "" {
			c.format = format
		}
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary string
	format string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary: "yt-dlp",
		format: "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b",
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Diagnostics yt-dlp emits for videos that cannot be fetched. Matched
// case-insensitively against stderr.
var unavailableMarkers = []string{
	"video unavailable",
	"private video",
	"this video is not available",
	"has been removed",
	"account associated with this video has been terminated",
	"not available in your country",
	"members-only",
	"sign in to confirm your age",
	"no video formats found",
}

// Fetch downloads the video into destDir and returns the local path and
// title. The file is named <videoID>.<ext> with the extension chosen by
// yt-dlp from the selected format.
func (c *CLI) Fetch(ctx context.Context, videoID, destDir string) (Download, error) {
	if strings.TrimSpace(videoID) == "" {
		return Download{}, errors.New("video id required")
	}
	if strings.TrimSpace(destDir) == "" {
		return Download{}, errors.New("destination directory required")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Download{}, services.Wrap(services.ErrExternalTool, "fetching", "video", "create destination", err)
	}

	template := filepath.Join(destDir, "%(id)s.%(ext)s")
	args := []string{
		"--no-playlist",
		"--no-progress",
		"--no-simulate",
		"--format", c.format,
		"--output", template,
		"--print", "title",
		"--print", "after_move:filepath",
		"--", videoID,
	}

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if isUnavailable(detail) {
			return Download{}, services.Wrap(services.ErrVideoUnavailable, "fetching", "video", firstLine(detail), err)
		}
		return Download{}, services.Wrap(services.ErrExternalTool, "fetching", "video", firstLine(detail), err)
	}

	lines := nonEmptyLines(stdout.String())
	if len(lines) < 2 {
		return Download{}, services.Wrap(services.ErrExternalTool, "fetching", "video", "yt-dlp reported no file path", nil)
	}
	// Prints appear in argument order: title first, final file path last.
	download := Download{
		Title: lines[0],
		Path:  lines[len(lines)-1],
	}
	if _, err := os.Stat(download.Path); err != nil {
		return Download{}, services.Wrap(services.ErrExternalTool, "fetching", "video", "downloaded file missing", err)
	}
	return download, nil
}

func isUnavailable(detail string) bool {
	lowered := strings.ToLower(detail)
	for _, marker := range unavailableMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "yt-dlp failed"
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

var _ Client = (*CLI)(nil)
