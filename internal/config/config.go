package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	CacheDir   string `toml:"cache_dir"`
	LogDir     string `toml:"log_dir"`
}

// Fetch contains configuration for video download.
type Fetch struct {
	Binary string `toml:"binary"`
	Format string `toml:"format"`
}

// Transcript contains configuration for caption retrieval.
type Transcript struct {
	BaseURL      string `toml:"base_url"`
	UserAgent    string `toml:"user_agent"`
	CacheEnabled bool   `toml:"cache_enabled"`
}

// Overlay contains configuration for caption overlay styling.
type Overlay struct {
	Position     string `toml:"position"`
	FontName     string `toml:"font_name"`
	FontSize     int    `toml:"font_size"`
	Color        string `toml:"color"`
	OutlineColor string `toml:"outline_color"`
	MaxLineChars int    `toml:"max_line_chars"`
	MarginPixels int    `toml:"margin_pixels"`
}

// Output contains configuration for the composed output file.
type Output struct {
	// Container forces an output container extension (e.g. "mp4"). Empty
	// means match the source container.
	Container  string `toml:"container"`
	VideoCodec string `toml:"video_codec"`
	CRF        int    `toml:"crf"`
	Preset     string `toml:"preset"`
}

// Pipeline contains run-level timing and hygiene settings.
type Pipeline struct {
	// TimeoutSeconds bounds the whole run. Zero disables the budget.
	TimeoutSeconds      int `toml:"timeout_seconds"`
	StaleWorkspaceHours int `toml:"stale_workspace_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for captionburn.
//
// Configuration sections by subsystem:
//   - Paths: staging, cache, and log directories
//   - Fetch: yt-dlp binary and format selection
//   - Transcript: caption endpoint and transcript cache
//   - Overlay: burned-in caption styling
//   - Output: container and encode parameters
//   - Pipeline: run timeout and workspace hygiene
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Fetch      Fetch      `toml:"fetch"`
	Transcript Transcript `toml:"transcript"`
	Overlay    Overlay    `toml:"overlay"`
	Output     Output     `toml:"output"`
	Pipeline   Pipeline   `toml:"pipeline"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/captionburn/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err = os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before any stage starts.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to path, refusing to overwrite
// an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// FFmpegBinary returns the ffmpeg executable name used for composition.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
