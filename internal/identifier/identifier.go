package identifier

import (
	"net/url"
	"strings"

	"captionburn/internal/services"
)

// Video IDs are exactly 11 characters drawn from the base64url alphabet.
const idLength = 11

var acceptedHosts = map[string]struct{}{
	"youtube.com":              {},
	"www.youtube.com":          {},
	"m.youtube.com":            {},
	"music.youtube.com":        {},
	"youtu.be":                 {},
	"www.youtu.be":             {},
	"youtube-nocookie.com":     {},
	"www.youtube-nocookie.com": {},
}

// Resolve extracts the canonical video identifier from a YouTube URL. Bare
// identifiers pass through unchanged so scripted callers can skip the URL.
func Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", services.Wrap(services.ErrInvalidURL, "resolving", "", "empty url", nil)
	}

	if isValidID(raw) {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidURL, "resolving", "", "unparseable url", err)
	}
	if parsed.Host == "" && parsed.Scheme == "" {
		// Tolerate scheme-less input like "youtu.be/ID".
		parsed, err = url.Parse("https://" + raw)
		if err != nil {
			return "", services.Wrap(services.ErrInvalidURL, "resolving", "", "unparseable url", err)
		}
	}

	host := strings.ToLower(parsed.Hostname())
	if _, ok := acceptedHosts[host]; !ok {
		return "", services.Wrap(services.ErrInvalidURL, "resolving", "", "host "+host+" is not a youtube host", nil)
	}

	id := extractID(parsed)
	if !isValidID(id) {
		return "", services.Wrap(services.ErrInvalidURL, "resolving", "", "no video id in url", nil)
	}
	return id, nil
}

func extractID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.EscapedPath(), "/")
	segments := strings.Split(path, "/")

	// Short form: youtu.be/<id>
	if strings.HasSuffix(host, "youtu.be") {
		if len(segments) > 0 {
			return segments[0]
		}
		return ""
	}

	// Long form: /watch?v=<id>
	if path == "watch" {
		return u.Query().Get("v")
	}

	// Path forms: /embed/<id>, /shorts/<id>, /live/<id>, /v/<id>
	if len(segments) == 2 {
		switch segments[0] {
		case "embed", "shorts", "live", "v":
			return segments[1]
		}
	}
	return ""
}

func isValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
