// Package ytdlp wraps the yt-dlp command-line downloader.
//
// The pipeline treats video retrieval as an external collaborator: given a
// resolved video ID and a destination directory, Fetch downloads the best
// progressive stream and reports the local file path and video title.
// Unavailable, private, and region-locked videos are classified to the
// services.ErrVideoUnavailable sentinel by inspecting yt-dlp's diagnostics.
package ytdlp
