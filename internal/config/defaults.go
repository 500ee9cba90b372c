package config

const (
	defaultCacheDir            = "~/.cache/captionburn"
	defaultFetchBinary         = "yt-dlp"
	defaultFetchFormat         = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b"
	defaultTranscriptBaseURL   = "https://www.youtube.com/api/timedtext"
	defaultTranscriptUserAgent = "captionburn/dev"
	defaultOverlayPosition     = "bottom-center"
	defaultOverlayFontName     = "Arial"
	defaultOverlayFontSize     = 24
	defaultOverlayColor        = "#FFFFFF"
	defaultOverlayOutline      = "#000000"
	defaultOverlayMaxLineChars = 42
	defaultOverlayMarginPixels = 24
	defaultVideoCodec          = "libx264"
	defaultCRF                 = 18
	defaultPreset              = "medium"
	defaultStaleWorkspaceHours = 24
	defaultLogFormat           = ""
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			// StagingDir defaults to a captionburn subdirectory of the
			// system temp dir; resolved during normalize.
			CacheDir: defaultCacheDir,
		},
		Fetch: Fetch{
			Binary: defaultFetchBinary,
			Format: defaultFetchFormat,
		},
		Transcript: Transcript{
			BaseURL:      defaultTranscriptBaseURL,
			UserAgent:    defaultTranscriptUserAgent,
			CacheEnabled: true,
		},
		Overlay: Overlay{
			Position:     defaultOverlayPosition,
			FontName:     defaultOverlayFontName,
			FontSize:     defaultOverlayFontSize,
			Color:        defaultOverlayColor,
			OutlineColor: defaultOverlayOutline,
			MaxLineChars: defaultOverlayMaxLineChars,
			MarginPixels: defaultOverlayMarginPixels,
		},
		Output: Output{
			VideoCodec: defaultVideoCodec,
			CRF:        defaultCRF,
			Preset:     defaultPreset,
		},
		Pipeline: Pipeline{
			StaleWorkspaceHours: defaultStaleWorkspaceHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
