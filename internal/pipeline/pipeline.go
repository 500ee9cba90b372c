package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"captionburn/internal/compose"
	"captionburn/internal/config"
	"captionburn/internal/identifier"
	"captionburn/internal/logging"
	"captionburn/internal/media/ffprobe"
	"captionburn/internal/overlay"
	"captionburn/internal/services"
	"captionburn/internal/services/timedtext"
	"captionburn/internal/services/ytdlp"
	"captionburn/internal/staging"
	"captionburn/internal/textutil"
	"captionburn/internal/transcript"
)

// State names one phase of a run. Transitions are one-directional; any
// failure moves straight to StateFailed.
type State string

const (
	StateResolving   State = "resolving"
	StateFetching    State = "fetching"
	StateNormalizing State = "normalizing"
	StateRendering   State = "rendering"
	StateComposing   State = "composing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// VideoSource describes the fetched video for one run. It is created once
// after download and probe, and read-only afterwards.
type VideoSource struct {
	ID        string
	Path      string
	Title     string
	Duration  float64
	Container string
}

// Request describes one burn invocation.
type Request struct {
	URL      string
	Language string
	// OutputPath is where the composed video lands. Empty derives a name
	// from the video title in the current directory.
	OutputPath string
	// Timeout bounds the whole run. Zero falls back to config; zero there
	// too means no budget.
	Timeout time.Duration
}

// Result is the terminal artifact of a successful run.
type Result struct {
	VideoID         string
	Title           string
	OutputPath      string
	CueCount        int
	DroppedSegments int
	Elapsed         time.Duration
}

// Composer is the composition engine contract the runner needs.
type Composer interface {
	Compose(ctx context.Context, req compose.Request) (compose.Result, error)
}

// Runner owns one pipeline invocation end to end.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	videos      ytdlp.Client
	transcripts timedtext.Fetcher
	cache       *transcript.Cache
	composer    Composer
	probe       func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewRunner wires a runner from config with the default collaborators.
// The transcript cache is optional; a nil cache disables reuse.
func NewRunner(cfg *config.Config, logger *slog.Logger, cache *transcript.Cache) *Runner {
	runner := &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		cache:    cache,
		composer: compose.NewEngine(cfg, logger),
		probe:    ffprobe.Inspect,
	}
	runner.videos = ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.Fetch.Binary),
		ytdlp.WithFormat(cfg.Fetch.Format),
	)
	runner.transcripts = timedtext.NewClient(
		timedtext.WithBaseURL(cfg.Transcript.BaseURL),
		timedtext.WithUserAgent(cfg.Transcript.UserAgent),
	)
	return runner
}

// WithVideoClient injects a video fetch collaborator, used by tests.
func (r *Runner) WithVideoClient(client ytdlp.Client) {
	if r != nil && client != nil {
		r.videos = client
	}
}

// WithTranscriptFetcher injects a transcript collaborator, used by tests.
func (r *Runner) WithTranscriptFetcher(fetcher timedtext.Fetcher) {
	if r != nil && fetcher != nil {
		r.transcripts = fetcher
	}
}

// WithComposer injects a composition engine, used by tests.
func (r *Runner) WithComposer(composer Composer) {
	if r != nil && composer != nil {
		r.composer = composer
	}
}

// WithProber injects a media prober, used by tests.
func (r *Runner) WithProber(probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)) {
	if r != nil && probe != nil {
		r.probe = probe
	}
}

type videoOutcome struct {
	source VideoSource
	err    error
}

type transcriptOutcome struct {
	segments []transcript.Segment
	cached   bool
	err      error
}

// Run executes the pipeline for one request.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	started := time.Now()

	timeout := req.Timeout
	if timeout == 0 && r.cfg.Pipeline.TimeoutSeconds > 0 {
		timeout = time.Duration(r.cfg.Pipeline.TimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	staging.SweepStale(r.cfg.Paths.StagingDir,
		time.Duration(r.cfg.Pipeline.StaleWorkspaceHours)*time.Hour, r.logger)

	result, err := r.run(ctx, req)
	result.Elapsed = time.Since(started)
	if err != nil {
		err = services.Classify(err)
		r.transition(StateFailed, logging.Error(err))
		return result, err
	}
	r.transition(StateDone,
		logging.String("output", result.OutputPath),
		logging.Int("cue_count", result.CueCount),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (r *Runner) run(ctx context.Context, req Request) (Result, error) {
	result := Result{}

	r.transition(StateResolving, logging.String("url", req.URL))
	videoID, err := identifier.Resolve(req.URL)
	if err != nil {
		return result, err
	}
	result.VideoID = videoID

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "en"
	}

	workspace, err := staging.NewWorkspace(r.cfg.Paths.StagingDir)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, string(StateFetching), "workspace", "create run workspace", err)
	}
	defer func() {
		if removeErr := workspace.Remove(); removeErr != nil && r.logger != nil {
			r.logger.Warn("workspace cleanup failed",
				logging.String("path", workspace.Dir),
				logging.Error(removeErr),
			)
		}
	}()

	r.transition(StateFetching,
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldRunID, workspace.ID),
		logging.String("language", language),
	)

	// The two fetches are independent; both must finish before normalizing.
	videoCh := make(chan videoOutcome, 1)
	transcriptCh := make(chan transcriptOutcome, 1)
	go func() { videoCh <- r.fetchVideo(ctx, videoID, workspace.Dir) }()
	go func() { transcriptCh <- r.fetchTranscript(ctx, videoID, language) }()
	video := <-videoCh
	captions := <-transcriptCh

	if video.err != nil {
		return result, video.err
	}
	if captions.err != nil {
		return result, captions.err
	}
	result.Title = video.source.Title

	r.transition(StateNormalizing,
		logging.Int("segment_count", len(captions.segments)),
		logging.Bool("from_cache", captions.cached),
		logging.Float64("video_duration", video.source.Duration),
	)
	normalized := transcript.Normalize(captions.segments, video.source.Duration)
	result.CueCount = len(normalized.Cues)
	result.DroppedSegments = normalized.Dropped
	if normalized.Dropped > 0 && r.logger != nil {
		r.logger.Warn("dropped caption segments during normalization",
			logging.Int("dropped", normalized.Dropped),
			logging.Int("kept", len(normalized.Cues)),
		)
	}
	if len(normalized.Cues) == 0 && r.logger != nil {
		r.logger.Warn("no usable captions; output will be the plain video")
	}

	r.transition(StateRendering, logging.Int("cue_count", len(normalized.Cues)))
	style, err := overlay.StyleFromConfig(r.cfg.Overlay)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, string(StateRendering), "", "overlay style", err)
	}
	descriptors := overlay.Render(normalized.Cues, style)

	outputPath, err := r.resolveOutputPath(req.OutputPath, video.source)
	if err != nil {
		return result, err
	}
	result.OutputPath = outputPath

	r.transition(StateComposing,
		logging.Int("overlay_count", len(descriptors)),
		logging.String("output", outputPath),
	)
	composed, err := r.composer.Compose(ctx, compose.Request{
		VideoPath:   video.source.Path,
		Descriptors: descriptors,
		Style:       style,
		WorkDir:     workspace.Dir,
		OutputPath:  outputPath,
	})
	if err != nil {
		return result, err
	}
	result.OutputPath = composed.OutputPath
	return result, nil
}

func (r *Runner) fetchVideo(ctx context.Context, videoID, destDir string) videoOutcome {
	download, err := r.videos.Fetch(ctx, videoID, destDir)
	if err != nil {
		return videoOutcome{err: err}
	}

	probed, err := r.probe(ctx, r.cfg.FFprobeBinary(), download.Path)
	if err != nil {
		return videoOutcome{err: services.Wrap(services.ErrExternalTool, string(StateFetching), "probe", "inspect downloaded video", err)}
	}
	if probed.VideoStreamCount() == 0 {
		return videoOutcome{err: services.Wrap(services.ErrExternalTool, string(StateFetching), "probe", "downloaded file has no video stream", nil)}
	}
	duration := probed.DurationSeconds()
	if duration <= 0 {
		return videoOutcome{err: services.Wrap(services.ErrExternalTool, string(StateFetching), "probe", "could not determine video duration", nil)}
	}

	container := probed.ContainerExtension()
	if container == "" {
		container = strings.TrimPrefix(filepath.Ext(download.Path), ".")
	}
	return videoOutcome{source: VideoSource{
		ID:        videoID,
		Path:      download.Path,
		Title:     download.Title,
		Duration:  duration,
		Container: container,
	}}
}

func (r *Runner) fetchTranscript(ctx context.Context, videoID, language string) transcriptOutcome {
	if r.cache != nil && r.cfg.Transcript.CacheEnabled {
		if segments, ok, err := r.cache.Get(ctx, videoID, language); err == nil && ok {
			return transcriptOutcome{segments: segments, cached: true}
		}
	}

	segments, err := r.transcripts.Fetch(ctx, videoID, language)
	if err != nil {
		return transcriptOutcome{err: err}
	}

	if r.cache != nil && r.cfg.Transcript.CacheEnabled {
		if err := r.cache.Put(ctx, videoID, language, segments); err != nil && r.logger != nil {
			r.logger.Warn("transcript cache write failed", logging.Error(err))
		}
	}
	return transcriptOutcome{segments: segments}
}

// resolveOutputPath fills in the default output name and guarantees a
// container extension. The default container matches the source.
func (r *Runner) resolveOutputPath(requested string, source VideoSource) (string, error) {
	container := r.cfg.Output.Container
	if container == "" {
		container = source.Container
	}
	if container == "" {
		container = "mp4"
	}

	if strings.TrimSpace(requested) == "" {
		name := textutil.SanitizeFileName(source.Title)
		if name == "" {
			name = source.ID
		}
		return name + "." + container, nil
	}
	if filepath.Ext(requested) == "" {
		return requested + "." + container, nil
	}
	return requested, nil
}

func (r *Runner) transition(state State, attrs ...logging.Attr) {
	if r.logger == nil {
		return
	}
	args := append([]logging.Attr{logging.String(logging.FieldStage, string(state))}, attrs...)
	r.logger.Info(fmt.Sprintf("pipeline %s", state), logging.Args(args...)...)
}
