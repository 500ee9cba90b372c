package compose

import (
	"fmt"
	"math"
	"strings"

	"captionburn/internal/overlay"
)

// ASS numpad alignment codes, keyed by overlay anchor.
var assAlignments = map[overlay.Position]int{
	overlay.BottomLeft:   1,
	overlay.BottomCenter: 2,
	overlay.BottomRight:  3,
	overlay.MiddleCenter: 5,
	overlay.TopLeft:      7,
	overlay.TopCenter:    8,
	overlay.TopRight:     9,
}

// buildScript renders descriptors into an ASS subtitle script. Every
// descriptor becomes one Dialogue event with its window expressed at
// centisecond precision, the finest ASS supports.
func buildScript(descriptors []overlay.Descriptor, style overlay.Style) string {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("WrapStyle: 2\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, Italic, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV\n")
	fmt.Fprintf(&b, "Style: Caption,%s,%d,%s,%s,%s,0,0,1,2,0,%d,%d,%d,%d\n",
		style.FontName,
		style.FontSize,
		assColor(style.Color),
		assColor(style.OutlineColor),
		assColor(style.OutlineColor),
		alignmentFor(style.Position),
		style.MarginPixels,
		style.MarginPixels,
		style.MarginPixels,
	)
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Text\n")
	for _, d := range descriptors {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Caption,%s\n",
			assTimestamp(d.Start),
			assTimestamp(d.End),
			assText(d.Lines),
		)
	}
	return b.String()
}

func alignmentFor(pos overlay.Position) int {
	if code, ok := assAlignments[pos]; ok {
		return code
	}
	return assAlignments[overlay.BottomCenter]
}

// assTimestamp formats seconds as H:MM:SS.CC, rounding to the nearest
// centisecond so abutting windows stay abutting.
func assTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(math.Round(seconds * 100))
	h := centis / 360000
	m := (centis / 6000) % 60
	s := (centis / 100) % 60
	cs := centis % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// assText joins wrapped lines with ASS hard breaks and neutralizes the
// characters libass would treat as override blocks.
func assText(lines []string) string {
	text := strings.Join(lines, `\N`)
	text = strings.ReplaceAll(text, "{", "(")
	text = strings.ReplaceAll(text, "}", ")")
	return text
}

// assColor converts "#RRGGBB" to the &H00BBGGRR& form ASS expects. Unparseable
// values fall back to white.
func assColor(hex string) string {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "&H00FFFFFF&"
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return "&H00FFFFFF&"
	}
	return fmt.Sprintf("&H00%02X%02X%02X&", b, g, r)
}
