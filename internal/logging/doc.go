// Package logging wraps log/slog with the construction and attribute helpers
// the rest of the tool uses.
//
// New builds a logger from explicit Options; NewFromConfig derives those
// options from application config, appending a log file under the configured
// log directory when one is set. Attr helpers keep call sites terse and give
// every component a standardized "component" attribute via
// NewComponentLogger.
package logging
