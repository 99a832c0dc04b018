// Package server assembles the MCP server that exposes every registered
// simulator's handlers as tools.
//
// Each simulator tool is published under the name <simulator>_<tool>, e.g.
// github_search_repositories. Argument metadata becomes the tool's JSON
// input schema, and domain errors returned by a handler are rendered as MCP
// tool errors rather than protocol failures, so an LLM client sees the
// message and can retry with corrected arguments.
//
// Three transports are supported: stdio for editor/agent embedding, SSE,
// and streamable-http (the default).
package server
