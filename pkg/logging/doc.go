// Package logging provides a structured logging system for mimic with unified
// log handling and level filtering.
//
// This package is a thin wrapper around Go's standard slog package. All log
// entries carry a subsystem identifier so that output from the different
// simulators and the MCP server layer can be told apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("GitHub", "seeded %d repositories", n)
//	logging.Error("Server", err, "tool execution failed for %s", name)
//
// Log output always goes to the configured writer (stderr by default); the
// stdio MCP transport owns stdout, so nothing in this package may write there.
package logging
