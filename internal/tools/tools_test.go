package tools

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"panthermcp/internal/panther"
)

// callRequest builds a tool invocation with the given arguments.
func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// mustCall invokes a handler and fails the test on a protocol error.
func mustCall(t *testing.T, handler toolHandler, request mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	return result
}

// envelope decodes the JSON text envelope of a tool result.
func envelope(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

// restClient points a client at a fake REST endpoint.
func restClient(t *testing.T, server *httptest.Server) *panther.Client {
	t.Helper()
	return panther.NewClient(&panther.Config{
		APIToken:   "test-token",
		RESTAPIURL: server.URL,
	})
}

// gqlClient points a client at a fake GraphQL endpoint.
func gqlClient(t *testing.T, server *httptest.Server) *panther.Client {
	t.Helper()
	return panther.NewClient(&panther.Config{
		APIToken:      "test-token",
		GraphQLAPIURL: server.URL,
	})
}
