// Package compose burns overlay descriptors into a video with ffmpeg.
//
// The engine writes the descriptors to an ASS subtitle script (exact
// per-overlay start/end timestamps, alignment derived from the overlay
// anchor) and renders it through ffmpeg's ass filter while copying the
// source audio untouched. Output is written to a hidden temp file next to
// the requested path and renamed into place only after ffmpeg exits
// cleanly, so the output path never holds a partial file.
package compose
