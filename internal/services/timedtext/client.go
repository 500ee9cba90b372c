package timedtext

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"captionburn/internal/services"
	"captionburn/internal/transcript"
)

const defaultBaseURL = "https://www.youtube.com/api/timedtext"

// Track describes one caption track a video exposes.
type Track struct {
	LanguageCode string
	Name         string
	Kind         string // "asr" for auto-generated tracks
}

// IsAutoGenerated reports whether the track is machine transcription.
func (t Track) IsAutoGenerated() bool {
	return t.Kind == "asr"
}

// Fetcher defines transcript retrieval behaviour.
type Fetcher interface {
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	Fetch(ctx context.Context, videoID, languageCode string) ([]transcript.Segment, error)
}

// Option configures the HTTP client.
type Option func(*Client)

// WithBaseURL overrides the caption endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent != "" {
			c.userAgent = agent
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client fetches caption tracks from the timedtext endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient constructs a caption client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  "captionburn/dev",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type trackList struct {
	XMLName xml.Name `xml:"transcript_list"`
	Tracks  []struct {
		LangCode string `xml:"lang_code,attr"`
		Name     string `xml:"name,attr"`
		Kind     string `xml:"kind,attr"`
	} `xml:"track"`
}

// ListTracks enumerates the caption tracks available for the video.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	query := url.Values{}
	query.Set("type", "list")
	query.Set("v", videoID)

	body, err := c.get(ctx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "list caption tracks", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "captions are disabled for this video", nil)
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "parse track list", err)
	}
	if len(list.Tracks) == 0 {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "captions are disabled for this video", nil)
	}

	tracks := make([]Track, 0, len(list.Tracks))
	for _, t := range list.Tracks {
		tracks = append(tracks, Track{LanguageCode: t.LangCode, Name: t.Name, Kind: t.Kind})
	}
	return tracks, nil
}

// Fetch retrieves the caption segments for the requested language. Track
// selection uses language matching, so "en" accepts "en-GB" when no exact
// track exists. Manually authored tracks win over auto-generated ones at
// equal match quality.
func (c *Client) Fetch(ctx context.Context, videoID, languageCode string) ([]transcript.Segment, error) {
	tracks, err := c.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := matchTrack(tracks, languageCode)
	if !ok {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript",
			fmt.Sprintf("no %q captions; available languages: %s", languageCode, strings.Join(availableLanguages(tracks), ", ")), nil)
	}

	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", track.LanguageCode)
	query.Set("fmt", "json3")
	if track.Name != "" {
		query.Set("name", track.Name)
	}
	if track.Kind != "" {
		query.Set("kind", track.Kind)
	}

	body, err := c.get(ctx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "download caption track", err)
	}

	segments, err := parseJSON3(body)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscriptUnavailable, "fetching", "transcript", "parse caption track", err)
	}
	return segments, nil
}

func (c *Client) get(ctx context.Context, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// matchTrack picks the track best matching the requested language.
func matchTrack(tracks []Track, requested string) (Track, bool) {
	requestedTag := language.Make(strings.TrimSpace(requested))
	if requestedTag == language.Und {
		return Track{}, false
	}

	// Manual tracks first so the matcher prefers them at equal quality.
	ordered := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if !t.IsAutoGenerated() {
			ordered = append(ordered, t)
		}
	}
	for _, t := range tracks {
		if t.IsAutoGenerated() {
			ordered = append(ordered, t)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, t := range ordered {
		tags = append(tags, language.Make(t.LanguageCode))
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(requestedTag)
	if confidence == language.No {
		return Track{}, false
	}
	return ordered[index], true
}

func availableLanguages(tracks []Track) []string {
	seen := map[string]struct{}{}
	var codes []string
	for _, t := range tracks {
		if _, ok := seen[t.LanguageCode]; ok {
			continue
		}
		seen[t.LanguageCode] = struct{}{}
		codes = append(codes, t.LanguageCode)
	}
	return codes
}

type json3Payload struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func parseJSON3(body []byte) ([]transcript.Segment, error) {
	var payload json3Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	segments := make([]transcript.Segment, 0, len(payload.Events))
	for _, event := range payload.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		cleaned := strings.TrimSpace(text.String())
		if cleaned == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Text:     cleaned,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	return segments, nil
}

var _ Fetcher = (*Client)(nil)
