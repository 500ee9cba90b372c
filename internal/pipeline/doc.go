// Package pipeline sequences a full caption burn run.
//
// A run moves one-directionally through resolving, fetching, normalizing,
// rendering, and composing; any stage failure short-circuits to failed and
// removes the run workspace, so the requested output path only ever holds a
// complete composed video or nothing. The video download and transcript
// fetch have no ordering dependency and run concurrently; normalization
// waits for both because clamping needs the probed video duration and the
// full segment list.
package pipeline
