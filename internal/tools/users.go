package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

func registerUserTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_panther_users",
			mcp.WithDescription("List all user accounts of the instance"),
		),
		Handler:     traced("list_panther_users", listPantherUsers(client)),
		Permissions: permissions.AllOf(permissions.UserRead),
	})
}

func listPantherUsers(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		users, err := client.ListUsers(ctx)
		if err != nil {
			return failure("Failed to fetch users: %v", err)
		}
		return success(map[string]interface{}{"users": users})
	}
}
