package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFetch()
	c.normalizeTranscript()
	c.normalizeOverlay()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = filepath.Join(os.TempDir(), "captionburn")
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	} else {
		c.Paths.LogDir = ""
	}
	return nil
}

func (c *Config) normalizeFetch() {
	c.Fetch.Binary = strings.TrimSpace(c.Fetch.Binary)
	if c.Fetch.Binary == "" {
		c.Fetch.Binary = defaultFetchBinary
	}
	c.Fetch.Format = strings.TrimSpace(c.Fetch.Format)
	if c.Fetch.Format == "" {
		c.Fetch.Format = defaultFetchFormat
	}
}

func (c *Config) normalizeTranscript() {
	c.Transcript.BaseURL = strings.TrimSpace(c.Transcript.BaseURL)
	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = defaultTranscriptBaseURL
	}
	c.Transcript.UserAgent = strings.TrimSpace(c.Transcript.UserAgent)
	if c.Transcript.UserAgent == "" {
		c.Transcript.UserAgent = defaultTranscriptUserAgent
	}
}

func (c *Config) normalizeOverlay() {
	c.Overlay.Position = strings.ToLower(strings.TrimSpace(c.Overlay.Position))
	if c.Overlay.Position == "" {
		c.Overlay.Position = defaultOverlayPosition
	}
	c.Overlay.FontName = strings.TrimSpace(c.Overlay.FontName)
	if c.Overlay.FontName == "" {
		c.Overlay.FontName = defaultOverlayFontName
	}
	if c.Overlay.FontSize == 0 {
		c.Overlay.FontSize = defaultOverlayFontSize
	}
	c.Overlay.Color = strings.TrimSpace(c.Overlay.Color)
	if c.Overlay.Color == "" {
		c.Overlay.Color = defaultOverlayColor
	}
	c.Overlay.OutlineColor = strings.TrimSpace(c.Overlay.OutlineColor)
	if c.Overlay.OutlineColor == "" {
		c.Overlay.OutlineColor = defaultOverlayOutline
	}
	if c.Overlay.MaxLineChars == 0 {
		c.Overlay.MaxLineChars = defaultOverlayMaxLineChars
	}
	if c.Overlay.MarginPixels == 0 {
		c.Overlay.MarginPixels = defaultOverlayMarginPixels
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Container = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Output.Container)), ".")
	c.Output.VideoCodec = strings.TrimSpace(c.Output.VideoCodec)
	if c.Output.VideoCodec == "" {
		c.Output.VideoCodec = defaultVideoCodec
	}
	if c.Output.CRF == 0 {
		c.Output.CRF = defaultCRF
	}
	c.Output.Preset = strings.TrimSpace(c.Output.Preset)
	if c.Output.Preset == "" {
		c.Output.Preset = defaultPreset
	}
	if c.Pipeline.StaleWorkspaceHours == 0 {
		c.Pipeline.StaleWorkspaceHours = defaultStaleWorkspaceHours
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
