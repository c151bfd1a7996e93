package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
	"panthermcp/pkg/logging"
)

// maxSchemaDetailNames caps how many schemas one detail request may name, to
// keep response sizes in check.
const maxSchemaDetailNames = 5

func registerSchemaTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_log_type_schemas",
			mcp.WithDescription("List all available log type schemas. Schemas are transformation instructions that convert raw audit logs into structured data for the data lake and real-time rules."),
			mcp.WithString("contains", mcp.Description("Filter by name or schema field name")),
			mcp.WithBoolean("is_archived", mcp.Description("Filter by archive status")),
			mcp.WithBoolean("is_in_use", mcp.Description("Filter used/not used schemas")),
			mcp.WithBoolean("is_managed", mcp.Description("Filter by pack-managed schemas")),
		),
		Handler:     traced("list_log_type_schemas", listLogTypeSchemas(client)),
		Permissions: permissions.AllOf(permissions.LogSourceRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_panther_log_type_schema",
			mcp.WithDescription("Get detailed information for specific log type schemas, including their full specifications. Limited to 5 schemas at a time."),
			mcp.WithArray("schema_names", mcp.Description("Schema names to get details for (max 5)"), mcp.Items(map[string]any{"type": "string"})),
		),
		Handler:     traced("get_panther_log_type_schema", getLogTypeSchemaDetails(client)),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})
}

func listLogTypeSchemas(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		filters := panther.SchemaFilters{
			Contains:   stringArg(args, "contains", ""),
			IsArchived: boolArgPtr(args, "is_archived"),
			IsInUse:    boolArgPtr(args, "is_in_use"),
			IsManaged:  boolArgPtr(args, "is_managed"),
		}

		schemas, err := client.ListSchemas(ctx, filters)
		if err != nil {
			return failure("Failed to fetch schemas: %v", err)
		}

		return success(map[string]interface{}{"schemas": schemas})
	}
}

func getLogTypeSchemaDetails(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names := stringSliceArg(arguments(request), "schema_names")
		if len(names) == 0 {
			return failure("No schema names provided")
		}
		if len(names) > maxSchemaDetailNames {
			return failure("Maximum of %d schema names allowed per request", maxSchemaDetailNames)
		}

		// Query each schema individually so every name gets an exact lookup.
		var all []map[string]interface{}
		for _, name := range names {
			schemas, err := client.SchemaDetails(ctx, name)
			if err != nil {
				return failure("Failed to fetch schema details: %v", err)
			}
			if len(schemas) == 0 {
				logging.Warn("Tools", "No match found for schema %s", name)
				continue
			}
			all = append(all, schemas...)
		}

		if len(all) == 0 {
			return failure("No matching schemas found")
		}
		return success(map[string]interface{}{"schemas": all})
	}
}
