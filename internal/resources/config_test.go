package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panthermcp/internal/panther"
	"panthermcp/internal/registry"
)

func noopTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("{}"), nil
}

func otherTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("{}"), nil
}

func noopPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{}, nil
}

var _ server.ToolHandlerFunc = noopTool

func TestConfigResource(t *testing.T) {
	client := panther.NewClient(&panther.Config{
		APIToken:   "token",
		RESTAPIURL: "https://api.example.com",
	})

	reg := registry.New()
	reg.RegisterTool(registry.ToolDef{Tool: mcp.NewTool("zeta_tool"), Handler: noopTool})
	reg.RegisterTool(registry.ToolDef{Tool: mcp.NewTool("alpha_tool"), Handler: otherTool})
	reg.RegisterPrompt(registry.PromptDef{Prompt: mcp.Prompt{Name: "triage"}, Handler: noopPrompt})
	RegisterAll(reg, client)

	handler := configResource(reg, client)
	contents, err := handler(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, ConfigURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var payload struct {
		GQLAPIURL          string   `json:"gql_api_url"`
		RESTAPIURL         string   `json:"rest_api_url"`
		AvailableTools     []string `json:"available_tools"`
		AvailableResources []string `json:"available_resources"`
		AvailablePrompts   []string `json:"available_prompts"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))

	assert.Equal(t, "https://api.example.com/public/graphql", payload.GQLAPIURL)
	assert.Equal(t, "https://api.example.com", payload.RESTAPIURL)
	assert.Equal(t, []string{"alpha_tool", "zeta_tool"}, payload.AvailableTools)
	assert.Equal(t, []string{ConfigURI}, payload.AvailableResources)
	assert.Equal(t, []string{"triage"}, payload.AvailablePrompts)
}
