package server

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
)

// fakeSimulator is a minimal registry entry for factory tests.
type fakeSimulator struct {
	name  string
	tools []api.ToolMetadata
	exec  func(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error)
}

func (f *fakeSimulator) Name() string                 { return f.name }
func (f *fakeSimulator) GetTools() []api.ToolMetadata { return f.tools }
func (f *fakeSimulator) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	return f.exec(ctx, toolName, args)
}
func (f *fakeSimulator) SaveState(path string) error { return nil }
func (f *fakeSimulator) LoadState(path string) error { return nil }
func (f *fakeSimulator) ResetState()                 {}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Arguments: args,
		},
	}
}

func TestCreateToolsFromSimulatorsPrefixes(t *testing.T) {
	sim := &fakeSimulator{
		name: "demo",
		tools: []api.ToolMetadata{
			{Name: "list_items", Description: "List items"},
			{Name: "create_item", Description: "Create an item"},
		},
		exec: func(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
			return api.NewResult("ok"), nil
		},
	}
	api.RegisterSimulator(sim)
	defer api.DeregisterSimulator("demo")

	tools := createToolsFromSimulators()
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Tool.Name] = true
	}
	assert.True(t, names["demo_list_items"])
	assert.True(t, names["demo_create_item"])
}

func TestConvertToMCPSchema(t *testing.T) {
	schema := convertToMCPSchema([]api.ArgMetadata{
		{Name: "query", Type: "string", Required: true, Description: "Search query"},
		{Name: "per_page", Type: "integer", Description: "Page size", Default: 30},
		{Name: "labels", Description: "Label names", Schema: map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		}},
	})

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"query"}, schema.Required)

	query := schema.Properties["query"].(map[string]interface{})
	assert.Equal(t, "string", query["type"])

	perPage := schema.Properties["per_page"].(map[string]interface{})
	assert.Equal(t, 30, perPage["default"])

	// A detailed schema wins over the bare type, with the description merged in.
	labels := schema.Properties["labels"].(map[string]interface{})
	assert.Equal(t, "array", labels["type"])
	assert.Equal(t, "Label names", labels["description"])
}

func TestToolHandlerRendersDomainErrors(t *testing.T) {
	sim := &fakeSimulator{
		name: "demo",
		exec: func(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
			return nil, api.NewNotFoundError("item", "42")
		},
	}

	handler := createToolHandler(sim, "get_item")
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"id": "42"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "not found")
}

func TestToolHandlerMarshalsPayloads(t *testing.T) {
	sim := &fakeSimulator{
		name: "demo",
		exec: func(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
			assert.Equal(t, "hello", args["q"])
			return api.NewResult(map[string]interface{}{"total": 1}), nil
		},
	}

	handler := createToolHandler(sim, "search")
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"q": "hello"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"total":1}`, text.Text)
}

func TestConvertToMCPResultStringPassthrough(t *testing.T) {
	result := convertToMCPResult(&api.CallToolResult{Content: []interface{}{"plain text"}})
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "plain text", text.Text)
}
