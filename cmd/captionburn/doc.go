// Package main hosts the captionburn CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto the burn
// pipeline, caption track listing, media inspection, dependency checks, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
