// Package transcript defines the caption timing domain model and the
// normalization pass that turns raw fetched segments into a clean cue
// timeline.
//
// Raw segments arrive ordered by start time but carry no guarantees about
// overlap or staying within the video duration. Normalize produces cues that
// are strictly ordered, pairwise non-overlapping, and clamped to
// [0, duration]; gaps between cues are preserved so the compositor renders
// plain video there. Cache persists fetched segments in SQLite so repeat runs
// against the same video and language skip the network fetch.
package transcript
