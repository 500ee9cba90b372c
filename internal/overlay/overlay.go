package overlay

import (
	"fmt"
	"strings"

	"captionburn/internal/config"
	"captionburn/internal/transcript"
)

// Position is a screen anchor for overlay placement.
type Position string

const (
	BottomCenter Position = "bottom-center"
	BottomLeft   Position = "bottom-left"
	BottomRight  Position = "bottom-right"
	TopCenter    Position = "top-center"
	TopLeft      Position = "top-left"
	TopRight     Position = "top-right"
	MiddleCenter Position = "middle-center"
)

// MaxLines bounds overlay height; wrapped text beyond this is truncated with
// an ellipsis.
const MaxLines = 3

// Ellipsis marks truncated overlay text.
const Ellipsis = "…"

// Style carries the visual configuration applied to every overlay.
type Style struct {
	Position     Position
	FontName     string
	FontSize     int
	Color        string
	OutlineColor string
	MaxLineChars int
	MarginPixels int
}

// StyleFromConfig builds a Style from the overlay config section.
func StyleFromConfig(cfg config.Overlay) (Style, error) {
	pos, err := ParsePosition(cfg.Position)
	if err != nil {
		return Style{}, err
	}
	return Style{
		Position:     pos,
		FontName:     cfg.FontName,
		FontSize:     cfg.FontSize,
		Color:        cfg.Color,
		OutlineColor: cfg.OutlineColor,
		MaxLineChars: cfg.MaxLineChars,
		MarginPixels: cfg.MarginPixels,
	}, nil
}

// ParsePosition validates a position anchor string.
func ParsePosition(value string) (Position, error) {
	pos := Position(strings.ToLower(strings.TrimSpace(value)))
	switch pos {
	case BottomCenter, BottomLeft, BottomRight, TopCenter, TopLeft, TopRight, MiddleCenter:
		return pos, nil
	case "":
		return BottomCenter, nil
	default:
		return "", fmt.Errorf("unsupported overlay position %q", value)
	}
}

// Descriptor is one renderable overlay: wrapped text lines active during
// exactly [Start, End).
type Descriptor struct {
	Lines    []string
	Position Position
	Start    float64
	End      float64
}

// Text joins the wrapped lines with newlines.
func (d Descriptor) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Render produces one descriptor per cue with the cue's window copied
// unchanged. It never reorders or re-times cues.
func Render(cues []transcript.Cue, style Style) []Descriptor {
	descriptors := make([]Descriptor, 0, len(cues))
	for _, cue := range cues {
		descriptors = append(descriptors, Descriptor{
			Lines:    WrapText(cue.Text, style.MaxLineChars),
			Position: style.Position,
			Start:    cue.Start,
			End:      cue.End,
		})
	}
	return descriptors
}

// WrapText soft-wraps text at word boundaries to at most maxChars per line,
// never splitting a word. A single word longer than the limit gets its own
// line. At most MaxLines lines are returned; when text is cut, the last line
// ends with the ellipsis marker. A non-positive maxChars disables wrapping.
func WrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= maxChars {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	if len(lines) > MaxLines {
		lines = lines[:MaxLines]
		lines[MaxLines-1] += Ellipsis
	}
	return lines
}
