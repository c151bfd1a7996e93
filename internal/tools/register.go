package tools

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"panthermcp/internal/panther"
	"panthermcp/internal/registry"
	"panthermcp/pkg/logging"
)

// RegisterAll registers every tool with the registry, bound to the given
// client.
func RegisterAll(reg *registry.Registry, client *panther.Client) {
	registerAlertTools(reg, client)
	registerRuleTools(reg, client)
	registerHelperTools(reg, client)
	registerDataLakeTools(reg, client)
	registerMetricTools(reg, client)
	registerSourceTools(reg, client)
	registerSchemaTools(reg, client)
	registerUserTools(reg, client)
	registerPermissionTools(reg, client)
}

// traced wraps a handler with per-invocation logging keyed by a short trace
// id, so concurrent tool calls can be told apart in the logs.
func traced(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trace := uuid.NewString()[:8]
		logging.Debug("Tools", "[%s] %s invoked", trace, name)
		res, err := handler(ctx, request)
		if err != nil {
			logging.Error("Tools", err, "[%s] %s failed", trace, name)
		} else {
			logging.Debug("Tools", "[%s] %s completed", trace, name)
		}
		return res, err
	}
}
