// Package main hosts the sidmatch CLI entrypoint and command graph.
//
// Running sidmatch with no arguments starts the interactive session: two
// files are chosen and previewed, identifiers are extracted from the chosen
// columns, and the resulting sets are compared and optionally written out.
// The config subcommands scaffold and check the TOML configuration.
//
// Keep this package lean: extraction, comparison and output live in the
// internal packages; this package only asks questions and prints results.
package main
