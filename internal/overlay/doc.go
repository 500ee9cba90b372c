// Package overlay turns normalized caption cues into positioned, line-wrapped
// overlay descriptors.
//
// Render is a pure per-cue transformation: the active window is copied from
// the cue unchanged, and the text is soft-wrapped at word boundaries to the
// configured line width, capped at three lines with an ellipsis marking any
// truncation. Positioning is expressed as a screen anchor that the
// compositor maps to its renderer's alignment scheme.
package overlay
