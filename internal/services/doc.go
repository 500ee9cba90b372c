// Package services defines the shared error taxonomy for pipeline stages and
// external collaborators, plus the mapping from classified errors to process
// exit codes.
//
// Every failure surfaced by a stage is tagged with one of the exported
// sentinel errors so callers can classify it with errors.Is without parsing
// messages. Subpackages wrap the external tools and endpoints the pipeline
// depends on:
//   - ytdlp: video download via the yt-dlp binary
//   - timedtext: caption track listing and retrieval over HTTP
package services
