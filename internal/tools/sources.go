package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

func registerSourceTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_log_sources",
			mcp.WithDescription("List log sources with optional filters"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithArray("log_types", mcp.Description("Log types to filter by"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("is_healthy", mcp.Description("Filter by health status")),
			mcp.WithString("integration_type", mcp.Description("Integration type to filter by (e.g. \"S3\")")),
		),
		Handler:     traced("list_log_sources", listLogSources(client)),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})
}

func listLogSources(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		page, err := client.LogSources(ctx, stringArg(args, "cursor", ""))
		if err != nil {
			return failure("Failed to fetch log sources: %v", err)
		}

		sources := page.Sources

		// The sources API has no server-side filters for these; narrow the
		// page client-side.
		if isHealthy := boolArgPtr(args, "is_healthy"); isHealthy != nil {
			filtered := sources[:0]
			for _, source := range sources {
				if healthy, ok := source["isHealthy"].(bool); ok && healthy == *isHealthy {
					filtered = append(filtered, source)
				}
			}
			sources = filtered
		}

		if logTypes := stringSliceArg(args, "log_types"); len(logTypes) > 0 {
			filtered := sources[:0]
			for _, source := range sources {
				if sourceHasAnyLogType(source, logTypes) {
					filtered = append(filtered, source)
				}
			}
			sources = filtered
		}

		if integrationType := stringArg(args, "integration_type", ""); integrationType != "" {
			filtered := sources[:0]
			for _, source := range sources {
				if it, ok := source["integrationType"].(string); ok && it == integrationType {
					filtered = append(filtered, source)
				}
			}
			sources = filtered
		}

		return success(map[string]interface{}{
			"sources":           sources,
			"total_sources":     len(sources),
			"has_next_page":     page.HasNextPage,
			"has_previous_page": page.HasPrevPage,
			"end_cursor":        page.EndCursor,
			"start_cursor":      page.StartCursor,
		})
	}
}

func sourceHasAnyLogType(source map[string]interface{}, logTypes []string) bool {
	raw, ok := source["logTypes"].([]interface{})
	if !ok {
		return false
	}
	for _, item := range raw {
		if lt, ok := item.(string); ok && contains(logTypes, lt) {
			return true
		}
	}
	return false
}
