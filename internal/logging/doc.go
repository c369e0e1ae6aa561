// Package logging assembles structured slog loggers used across sidmatch.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Output defaults to stderr so diagnostics never land in the
// middle of an interactive prompt. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
