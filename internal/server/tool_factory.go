package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"mimic/internal/api"
	"mimic/pkg/logging"
)

// createToolsFromSimulators builds the MCP tool list from every registered
// simulator, prefixing each tool with the simulator name so that surfaces
// with overlapping verbs (create, list, search) stay distinct.
func createToolsFromSimulators() []mcpserver.ServerTool {
	var tools []mcpserver.ServerTool

	for _, sim := range api.ListSimulators() {
		prefix := sim.Name() + "_"
		for _, meta := range sim.GetTools() {
			tools = append(tools, mcpserver.ServerTool{
				Tool: mcp.Tool{
					Name:        prefix + meta.Name,
					Description: meta.Description,
					InputSchema: convertToMCPSchema(meta.Args),
				},
				Handler: createToolHandler(sim, meta.Name),
			})
		}
	}
	return tools
}

// createToolHandler wraps a simulator's ExecuteTool in an MCP handler.
// Domain errors become tool-error results; they never propagate as protocol
// errors, so the calling agent always receives the message.
func createToolHandler(provider api.ToolProvider, toolName string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]interface{}{}
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := provider.ExecuteTool(ctx, toolName, args)
		if err != nil {
			logging.Debug("ToolHandler", "tool %s failed: %v", toolName, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return convertToMCPResult(result), nil
	}
}

// convertToMCPSchema converts arg metadata into the JSON Schema object MCP
// clients use to validate tool input. A detailed Schema fragment on an arg
// takes precedence over its bare Type.
func convertToMCPSchema(argDefs []api.ArgMetadata) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, arg := range argDefs {
		var propSchema map[string]interface{}
		if len(arg.Schema) > 0 {
			propSchema = make(map[string]interface{}, len(arg.Schema)+1)
			for key, value := range arg.Schema {
				propSchema[key] = value
			}
			if arg.Description != "" {
				propSchema["description"] = arg.Description
			}
		} else {
			propSchema = map[string]interface{}{
				"type":        arg.Type,
				"description": arg.Description,
			}
		}
		if arg.Default != nil {
			propSchema["default"] = arg.Default
		}

		properties[arg.Name] = propSchema
		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// convertToMCPResult renders a handler result as MCP content. Strings pass
// through as text; everything else is marshaled to JSON text, the format
// tool-calling clients expect.
func convertToMCPResult(result *api.CallToolResult) *mcp.CallToolResult {
	mcpContent := make([]mcp.Content, len(result.Content))
	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
		} else {
			jsonBytes, _ := json.Marshal(content)
			mcpContent[i] = mcp.NewTextContent(string(jsonBytes))
		}
	}
	return &mcp.CallToolResult{
		Content: mcpContent,
		IsError: result.IsError,
	}
}
