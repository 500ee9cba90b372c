package config

import (
	"errors"
	"fmt"
)

var validPositions = map[string]struct{}{
	"bottom-center": {},
	"bottom-left":   {},
	"bottom-right":  {},
	"top-center":    {},
	"top-left":      {},
	"top-right":     {},
	"middle-center": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOverlay(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if c.Logging.Format != "" && c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateOverlay() error {
	if _, ok := validPositions[c.Overlay.Position]; !ok {
		return fmt.Errorf("overlay.position: unsupported anchor %q", c.Overlay.Position)
	}
	if c.Overlay.FontSize < 0 {
		return errors.New("overlay.font_size must be positive")
	}
	if c.Overlay.MaxLineChars < 0 {
		return errors.New("overlay.max_line_chars must be positive")
	}
	if c.Overlay.MarginPixels < 0 {
		return errors.New("overlay.margin_pixels must not be negative")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.CRF < 0 || c.Output.CRF > 51 {
		return errors.New("output.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.TimeoutSeconds < 0 {
		return errors.New("pipeline.timeout_seconds must not be negative")
	}
	if c.Pipeline.StaleWorkspaceHours < 0 {
		return errors.New("pipeline.stale_workspace_hours must not be negative")
	}
	return nil
}
