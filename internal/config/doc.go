// Package config loads, normalizes, and validates sidmatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SIDMATCH_LOG_LEVEL
// environment override. The Config type centralizes every knob the session
// needs: input parsing, identifier strictness, the reports offered at the
// end of a run, and where skipped rows and logs are written.
//
// A missing config file is normal; defaults reproduce the classic
// interactive behaviour. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
