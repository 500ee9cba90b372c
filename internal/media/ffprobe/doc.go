// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns a parsed Result; helper methods
// expose the container duration, stream counts, and the container extension
// the compositor uses when matching the source format.
package ffprobe
