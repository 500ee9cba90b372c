package transcript

import (
	"html"
	"strings"
)

// Segment is one timed caption as provided by the transcript source.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Cue is a normalized caption interval. Start < End always holds, and across
// a normalized sequence cues are strictly ordered and non-overlapping.
type Cue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// CleanText decodes HTML entities and collapses whitespace in raw caption
// text. Caption sources routinely deliver &amp;#39; style escapes and hard
// line breaks that have no meaning once the overlay renderer re-wraps.
func CleanText(text string) string {
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
