package transcript

// NormalizeResult reports what Normalize kept and what it discarded.
type NormalizeResult struct {
	Cues      []Cue
	Dropped   int
	Truncated int
}

// Normalize converts raw segments into a clean cue timeline bounded by the
// video duration.
//
// Each segment's end is clamped to the video duration; segments left with
// zero or negative length are dropped and counted. When a segment runs past
// its successor's start, the earlier cue yields: its end is truncated to the
// successor's start, and it is dropped if that empties it. Text order is
// never changed, and gaps between segments survive untouched.
//
// The pass is idempotent: normalizing its own output changes nothing.
func Normalize(segments []Segment, videoDuration float64) NormalizeResult {
	result := NormalizeResult{}
	if len(segments) == 0 || videoDuration <= 0 {
		result.Dropped = len(segments)
		return result
	}

	cues := make([]Cue, 0, len(segments))
	for _, seg := range segments {
		start := seg.Start
		end := seg.Start + seg.Duration
		if start < 0 {
			start = 0
		}
		if end > videoDuration {
			end = videoDuration
		}
		if start >= end {
			result.Dropped++
			continue
		}
		cues = append(cues, Cue{Text: CleanText(seg.Text), Start: start, End: end})
	}

	// Overlap resolution: the earlier cue yields to the next.
	resolved := make([]Cue, 0, len(cues))
	for i := 0; i < len(cues); i++ {
		cue := cues[i]
		if i+1 < len(cues) && cue.End > cues[i+1].Start {
			cue.End = cues[i+1].Start
			result.Truncated++
		}
		if cue.Start >= cue.End {
			result.Dropped++
			continue
		}
		resolved = append(resolved, cue)
	}

	result.Cues = resolved
	return result
}
