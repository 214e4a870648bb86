// Package config loads, validates, and normalizes sublift configuration.
//
// Configuration lives in a TOML file, resolved from an explicit --config
// path, then ~/.config/sublift/config.toml, then ./sublift.toml. Missing
// files fall back to defaults; command-line flags override file values.
package config
