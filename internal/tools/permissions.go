package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

func registerPermissionTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_permissions",
			mcp.WithDescription("Get the current API token's permissions. Use this to diagnose permission errors and determine whether a new token is needed."),
		),
		Handler:     traced("get_permissions", getPermissions(client)),
		Permissions: permissions.AllOf(permissions.OrganizationAPITokenRead),
	})
}

func getPermissions(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch permissions: %v", err)
		}
		defer session.Close()

		body, _, err := session.Get(ctx, "/api-tokens/self", nil)
		if err != nil {
			return failure("Failed to fetch permissions: %v", err)
		}

		raw := make([]string, 0)
		if list, ok := body["permissions"].([]interface{}); ok {
			for _, item := range list {
				if code, ok := item.(string); ok {
					raw = append(raw, code)
				}
			}
		}

		return success(map[string]interface{}{
			"permissions": permissions.Convert(raw),
		})
	}
}
