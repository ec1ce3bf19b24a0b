// Package config loads, normalizes, and validates audiocat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// AUDIOCAT_LOG_LEVEL and AUDIOCAT_FFPROBE. The Config type centralizes every
// knob the scanner, loader, and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extensions, and clear validation errors.
package config
