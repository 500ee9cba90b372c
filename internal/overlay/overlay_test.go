package overlay_test

import (
	"strings"
	"testing"

	"captionburn/internal/config"
	"captionburn/internal/overlay"
	"captionburn/internal/transcript"
)

func TestRenderCopiesWindowsUnchanged(t *testing.T) {
	cues := []transcript.Cue{
		{Text: "first", Start: 0, End: 1.25},
		{Text: "second", Start: 5, End: 6.5},
	}
	style := overlay.Style{Position: overlay.BottomCenter, MaxLineChars: 42}
	descriptors := overlay.Render(cues, style)
	if len(descriptors) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(descriptors))
	}
	for i, d := range descriptors {
		if d.Start != cues[i].Start || d.End != cues[i].End {
			t.Fatalf("descriptor %d window (%.3f, %.3f) does not match cue (%.3f, %.3f)",
				i, d.Start, d.End, cues[i].Start, cues[i].End)
		}
		if d.Position != overlay.BottomCenter {
			t.Fatalf("descriptor %d position = %q", i, d.Position)
		}
	}
}

func TestWrapTextBreaksAtWordBoundaries(t *testing.T) {
	lines := overlay.WrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range lines {
		if len(line) > 15 {
			t.Fatalf("line %q exceeds limit", line)
		}
	}
	rejoined := strings.Join(lines, " ")
	if rejoined != "the quick brown fox jumps over the lazy dog" {
		t.Fatalf("wrap lost or split words: %q", rejoined)
	}
}

func TestWrapTextNeverSplitsLongWord(t *testing.T) {
	lines := overlay.WrapText("a pneumonoultramicroscopic b", 10)
	found := false
	for _, line := range lines {
		if line == "pneumonoultramicroscopic" {
			found = true
		}
	}
	if !found {
		t.Fatalf("long word should sit alone unsplit, got %v", lines)
	}
}

func TestWrapTextTruncatesBeyondThreeLines(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 30))
	lines := overlay.WrapText(text, 10)
	if len(lines) != overlay.MaxLines {
		t.Fatalf("expected %d lines, got %d", overlay.MaxLines, len(lines))
	}
	if !strings.HasSuffix(lines[overlay.MaxLines-1], overlay.Ellipsis) {
		t.Fatalf("expected ellipsis on final line, got %q", lines[overlay.MaxLines-1])
	}
}

func TestWrapTextDisabledLimit(t *testing.T) {
	lines := overlay.WrapText("no wrapping happens here at all", 0)
	if len(lines) != 1 {
		t.Fatalf("expected single line, got %v", lines)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if lines := overlay.WrapText("   ", 20); lines != nil {
		t.Fatalf("expected nil for blank text, got %v", lines)
	}
}

func TestStyleFromConfig(t *testing.T) {
	style, err := overlay.StyleFromConfig(config.Overlay{
		Position:     "top-right",
		FontName:     "Helvetica",
		FontSize:     30,
		Color:        "#FFFF00",
		OutlineColor: "#101010",
		MaxLineChars: 36,
		MarginPixels: 12,
	})
	if err != nil {
		t.Fatalf("StyleFromConfig: %v", err)
	}
	if style.Position != overlay.TopRight || style.FontSize != 30 || style.MaxLineChars != 36 {
		t.Fatalf("unexpected style: %+v", style)
	}
}

func TestStyleFromConfigRejectsBadPosition(t *testing.T) {
	if _, err := overlay.StyleFromConfig(config.Overlay{Position: "under-the-fold"}); err == nil {
		t.Fatal("expected error for invalid position")
	}
}
