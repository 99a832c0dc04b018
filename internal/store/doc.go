// Package store provides the shared in-memory state container used by all
// simulators: a generic, mutex-guarded struct wrapper with whole-state JSON
// save/load and optional reload-on-change file watching.
package store
