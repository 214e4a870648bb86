// Package logging builds the slog loggers used across sublift.
//
// Two output formats are supported: a compact console handler for interactive
// runs and a JSON handler for machine consumption. A log file can be teed in
// alongside stderr. Attribute helpers keep call sites terse and consistent.
package logging
