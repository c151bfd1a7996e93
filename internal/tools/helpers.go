package tools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

func registerHelperTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_global_helpers",
			mcp.WithDescription("List all global helpers with optional pagination"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 100)")),
		),
		Handler:     traced("list_global_helpers", listGlobalHelpers(client)),
		Permissions: permissions.AnyOf(permissions.RuleRead, permissions.PolicyRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_global_helper_by_id",
			mcp.WithDescription("Get detailed information about a global helper by ID, including its Python body"),
			mcp.WithString("helper_id", mcp.Required(), mcp.Description("The ID of the global helper to fetch")),
		),
		Handler:     traced("get_global_helper_by_id", getGlobalHelperByID(client)),
		Permissions: permissions.AnyOf(permissions.RuleRead, permissions.PolicyRead),
	})
}

func listGlobalHelpers(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch global helpers: %v", err)
		}
		defer session.Close()

		body, _, err := session.Get(ctx, "/globals", listParams(arguments(request)))
		if err != nil {
			return failure("Failed to fetch global helpers: %v", err)
		}

		helpers := resultsList(body)
		next := nextCursor(body)

		return success(map[string]interface{}{
			"global_helpers":       helpers,
			"total_global_helpers": len(helpers),
			"has_next_page":        next != "",
			"next_cursor":          next,
		})
	}
}

func getGlobalHelperByID(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		helperID, err := request.RequireString("helper_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch global helper details: %v", err)
		}
		defer session.Close()

		body, status, err := session.Get(ctx, "/globals/"+helperID, nil, http.StatusOK, http.StatusNotFound)
		if err != nil {
			return failure("Failed to fetch global helper details: %v", err)
		}
		if status == http.StatusNotFound {
			return failure("No global helper found with ID: %s", helperID)
		}

		return success(map[string]interface{}{"global_helper": body})
	}
}
