// Package timedtext retrieves YouTube caption tracks over HTTP.
//
// ListTracks enumerates the caption tracks a video exposes; Fetch picks the
// best track for a requested language using golang.org/x/text language
// matching and returns the parsed timed segments. When captions are disabled
// or the requested language has no acceptable match, the failure carries the
// services.ErrTranscriptUnavailable sentinel and enumerates the languages
// that do exist so the CLI can surface them.
package timedtext
