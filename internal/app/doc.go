// Package app wires the simulators, their persisted state, and the MCP
// server into one running application.
//
// Run registers every enabled simulator, loads any configured state files,
// starts the server on the configured transport, and keeps state-file
// watchers running until the context is cancelled. On shutdown the current
// state of every simulator is written back to its state file.
package app
