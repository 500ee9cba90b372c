package transcript_test

import (
	"testing"

	"captionburn/internal/transcript"
)

func cuesEqual(a, b []transcript.Cue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkInvariants(t *testing.T, cues []transcript.Cue, videoDuration float64) {
	t.Helper()
	for i, cue := range cues {
		if cue.Start >= cue.End {
			t.Fatalf("cue %d has start %.3f >= end %.3f", i, cue.Start, cue.End)
		}
		if cue.Start < 0 || cue.End > videoDuration {
			t.Fatalf("cue %d [%.3f, %.3f] outside [0, %.3f]", i, cue.Start, cue.End, videoDuration)
		}
		if i > 0 {
			if cues[i-1].End > cue.Start {
				t.Fatalf("cue %d overlaps predecessor: %.3f > %.3f", i, cues[i-1].End, cue.Start)
			}
			if cues[i-1].Start >= cue.Start {
				t.Fatalf("cues %d and %d not strictly ordered", i-1, i)
			}
		}
	}
}

func TestNormalizeResolvesOverlap(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "A", Start: 0, Duration: 3},
		{Text: "B", Start: 2, Duration: 3},
	}
	result := transcript.Normalize(segments, 10)
	want := []transcript.Cue{
		{Text: "A", Start: 0, End: 2},
		{Text: "B", Start: 2, End: 5},
	}
	if !cuesEqual(result.Cues, want) {
		t.Fatalf("unexpected cues: %+v", result.Cues)
	}
	if result.Truncated != 1 {
		t.Fatalf("expected 1 truncation, got %d", result.Truncated)
	}
	checkInvariants(t, result.Cues, 10)
}

func TestNormalizePreservesGaps(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "A", Start: 0, Duration: 1},
		{Text: "B", Start: 5, Duration: 1},
	}
	result := transcript.Normalize(segments, 10)
	want := []transcript.Cue{
		{Text: "A", Start: 0, End: 1},
		{Text: "B", Start: 5, End: 6},
	}
	if !cuesEqual(result.Cues, want) {
		t.Fatalf("unexpected cues: %+v", result.Cues)
	}
}

func TestNormalizeClampsToVideoDuration(t *testing.T) {
	segments := []transcript.Segment{{Text: "C", Start: 9, Duration: 5}}
	result := transcript.Normalize(segments, 10)
	want := []transcript.Cue{{Text: "C", Start: 9, End: 10}}
	if !cuesEqual(result.Cues, want) {
		t.Fatalf("unexpected cues: %+v", result.Cues)
	}
}

func TestNormalizeDropsSegmentsBeyondDuration(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "in range", Start: 1, Duration: 2},
		{Text: "at end", Start: 10, Duration: 3},
		{Text: "past end", Start: 12, Duration: 3},
	}
	result := transcript.Normalize(segments, 10)
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %+v", result.Cues)
	}
	if result.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", result.Dropped)
	}
}

func TestNormalizeDropsZeroLengthSegments(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "empty", Start: 3, Duration: 0},
		{Text: "negative", Start: 4, Duration: -1},
	}
	result := transcript.Normalize(segments, 10)
	if len(result.Cues) != 0 || result.Dropped != 2 {
		t.Fatalf("expected all dropped, got cues=%+v dropped=%d", result.Cues, result.Dropped)
	}
}

func TestNormalizeDropsCueEmptiedByTruncation(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "A", Start: 2, Duration: 5},
		{Text: "B", Start: 2, Duration: 3},
	}
	result := transcript.Normalize(segments, 10)
	if len(result.Cues) != 1 || result.Cues[0].Text != "B" {
		t.Fatalf("expected only B to survive, got %+v", result.Cues)
	}
	checkInvariants(t, result.Cues, 10)
}

func TestNormalizeEmptyInput(t *testing.T) {
	result := transcript.Normalize(nil, 10)
	if len(result.Cues) != 0 || result.Dropped != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "one", Start: 0, Duration: 4},
		{Text: "two", Start: 3, Duration: 4},
		{Text: "three", Start: 6.5, Duration: 10},
		{Text: "four", Start: 20, Duration: 2},
	}
	first := transcript.Normalize(segments, 12)
	checkInvariants(t, first.Cues, 12)

	resegmented := make([]transcript.Segment, 0, len(first.Cues))
	for _, cue := range first.Cues {
		resegmented = append(resegmented, transcript.Segment{Text: cue.Text, Start: cue.Start, Duration: cue.End - cue.Start})
	}
	second := transcript.Normalize(resegmented, 12)
	if !cuesEqual(first.Cues, second.Cues) {
		t.Fatalf("normalize not idempotent:\nfirst  %+v\nsecond %+v", first.Cues, second.Cues)
	}
	if second.Truncated != 0 || second.Dropped != 0 {
		t.Fatalf("second pass should be a no-op, got %+v", second)
	}
}

func TestCleanTextDecodesEntitiesAndCollapsesWhitespace(t *testing.T) {
	got := transcript.CleanText("it&#39;s  a\n&quot;test&quot; &amp; more")
	want := "it's a \"test\" & more"
	if got != want {
		t.Fatalf("CleanText = %q, want %q", got, want)
	}
}
