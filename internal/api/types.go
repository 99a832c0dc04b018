package api

import (
	"context"
)

// CallToolResult represents the result of a tool call.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// NewResult wraps a handler payload in a successful CallToolResult.
func NewResult(payload interface{}) *CallToolResult {
	return &CallToolResult{Content: []interface{}{payload}}
}

// ToolMetadata describes a tool that can be exposed by a simulator.
type ToolMetadata struct {
	Name        string // e.g., "search_repositories", "create_contact"
	Description string
	Args        []ArgMetadata
}

// ArgMetadata describes a tool argument.
//
// Type carries the JSON Schema primitive ("string", "integer", "number",
// "boolean", "object", "array"). When an argument needs a richer schema than
// a bare type — nested object properties, array item types, enums — Schema
// holds the full JSON Schema fragment and takes precedence over Type.
type ArgMetadata struct {
	Name        string
	Type        string
	Required    bool
	Description string
	Default     interface{}
	Schema      map[string]interface{}
}

// ToolProvider is implemented by every simulator to expose its handlers
// as discoverable tools.
type ToolProvider interface {
	// GetTools returns all tools this provider offers.
	GetTools() []ToolMetadata

	// ExecuteTool executes a tool by name.
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}

// Simulator is the full contract a registered API simulator fulfills:
// the tool surface plus wholesale JSON state persistence.
type Simulator interface {
	ToolProvider

	// Name returns the simulator identifier used as the tool name prefix
	// (e.g., "github" for github_search_repositories).
	Name() string

	// SaveState dumps the simulator's entire store to a JSON file.
	SaveState(path string) error

	// LoadState replaces the simulator's entire store from a JSON file.
	LoadState(path string) error

	// ResetState restores the simulator's seed state.
	ResetState()
}

// StateWatcher is implemented by simulators whose store can reload its
// state file when the file changes on disk. WatchState blocks until ctx is
// cancelled.
type StateWatcher interface {
	WatchState(ctx context.Context, path string) error
}
