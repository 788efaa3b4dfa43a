// Package config loads and validates releasedesk configuration.
//
// Configuration lives in a TOML file; Load applies repository defaults,
// decodes the file when present, expands paths, and validates the result.
// The embedded sample_config.toml documents every setting and backs the
// "config init" CLI command.
package config
