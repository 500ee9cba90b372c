// Package deps checks the external binaries captionburn shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"captionburn/internal/config"
)

// Requirement defines an external dependency captionburn relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the binaries a burn run needs, resolved from config.
func Requirements(cfg *config.Config) []Requirement {
	fetchBinary := "yt-dlp"
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		fetchBinary = cfg.Fetch.Binary
		ffmpeg = cfg.FFmpegBinary()
		ffprobe = cfg.FFprobeBinary()
	}
	return []Requirement{
		{Name: "yt-dlp", Command: fetchBinary, Description: "Downloads the source video"},
		{Name: "FFmpeg", Command: ffmpeg, Description: "Burns caption overlays into the video"},
		{Name: "FFprobe", Command: ffprobe, Description: "Probes video duration and container"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
