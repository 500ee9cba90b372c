// Package config loads, normalizes, and validates captionburn's TOML
// configuration.
//
// Load resolves the config path (explicit flag, then the default location
// under ~/.config/captionburn), decodes it over the compiled-in defaults,
// expands ~ in path fields, and validates the result. A missing file is not
// an error; the defaults alone form a working configuration.
package config
