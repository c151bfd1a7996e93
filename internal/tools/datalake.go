package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

func registerDataLakeTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("execute_data_lake_query",
			mcp.WithDescription("Execute a Snowflake SQL query against the data lake. RECOMMENDED: first query information_schema.columns for the table schema and the p_log_type to get the correct column names and types."),
			mcp.WithString("sql", mcp.Required(), mcp.Description("The Snowflake SQL query to execute (tables are named after p_log_type)")),
			mcp.WithString("database_name", mcp.Description("Database to execute against: \"panther_logs.public\" (all logs, default) or \"panther_rule_matches.public\" (rule matches)")),
		),
		Handler:     traced("execute_data_lake_query", executeDataLakeQuery(client)),
		Permissions: permissions.AllOf(permissions.DataAnalyticsRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_data_lake_query_results",
			mcp.WithDescription("Get the results of a previously executed data lake query"),
			mcp.WithString("query_id", mcp.Required(), mcp.Description("The ID of the query to get results for")),
		),
		Handler:     traced("get_data_lake_query_results", getDataLakeQueryResults(client)),
		Permissions: permissions.AllOf(permissions.DataAnalyticsRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_data_lake_dbs_tables_columns",
			mcp.WithDescription("List all available databases, tables, and columns for querying the data lake. Check this BEFORE running a data lake query."),
			mcp.WithString("database", mcp.Description("Optional database name to filter results (e.g. \"panther_logs.public\")")),
			mcp.WithString("table", mcp.Description("Optional table name to filter results (e.g. \"compliance_history\")")),
		),
		Handler:     traced("get_data_lake_dbs_tables_columns", getDataLakeEntities(client)),
		Permissions: permissions.AllOf(permissions.DataAnalyticsRead),
	})
}

func executeDataLakeQuery(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sql, err := request.RequireString("sql")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		database := stringArg(arguments(request), "database_name", "panther_logs.public")

		queryID, err := client.SubmitDataLakeQuery(ctx, sql, database)
		if err != nil {
			return failure("Failed to execute data lake query: %v", err)
		}
		return success(map[string]interface{}{"query_id": queryID})
	}
}

func getDataLakeQueryResults(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		queryID, err := request.RequireString("query_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		snapshot, err := client.DataLakeQuery(ctx, queryID)
		if err != nil {
			var notFound *panther.QueryNotFoundError
			if errors.As(err, &notFound) {
				return failure("%s", notFound.Error())
			}
			return failure("Failed to fetch query results: %v", err)
		}

		switch snapshot.Status {
		case panther.QueryRunning:
			return success(map[string]interface{}{
				"status":  "running",
				"message": "Query is still running",
			})
		case panther.QueryFailed:
			message := snapshot.Message
			if message == "" {
				message = "Query failed"
			}
			return result(map[string]interface{}{
				"success": false,
				"status":  "failed",
				"message": message,
			})
		case panther.QueryCancelled:
			return result(map[string]interface{}{
				"success": false,
				"status":  "cancelled",
				"message": "Query was cancelled",
			})
		}

		columnTypes := snapshot.Columns.Types
		if columnTypes == nil {
			columnTypes = map[string]string{}
		}
		columnOrder := snapshot.Columns.Order
		if columnOrder == nil {
			columnOrder = []string{}
		}

		return success(map[string]interface{}{
			"status":  "succeeded",
			"results": snapshot.Rows,
			"column_info": map[string]interface{}{
				"order": columnOrder,
				"types": columnTypes,
			},
			"stats": map[string]interface{}{
				"bytes_scanned":  snapshot.Stats.BytesScanned,
				"execution_time": snapshot.Stats.ExecutionTime,
				"row_count":      snapshot.Stats.RowCount,
			},
			"has_next_page": snapshot.HasNextPage,
			"end_cursor":    snapshot.EndCursor,
		})
	}
}

func getDataLakeEntities(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		databaseFilter := stringArg(args, "database", "")
		tableFilter := stringArg(args, "table", "")

		databases, err := client.ListDatabaseEntities(ctx)
		if err != nil {
			return failure("Failed to fetch data lake entities: %v", err)
		}

		if databaseFilter != "" {
			filtered := databases[:0]
			for _, db := range databases {
				if strings.EqualFold(db.Name, databaseFilter) {
					filtered = append(filtered, db)
				}
			}
			databases = filtered
			if len(databases) == 0 {
				return failure("Database '%s' not found", databaseFilter)
			}
		}

		if tableFilter != "" {
			filtered := databases[:0]
			for _, db := range databases {
				tables := make([]panther.DatabaseTable, 0, len(db.Tables))
				for _, table := range db.Tables {
					if strings.EqualFold(table.Name, tableFilter) {
						tables = append(tables, table)
					}
				}
				if len(tables) > 0 {
					db.Tables = tables
					filtered = append(filtered, db)
				}
			}
			databases = filtered
			if len(databases) == 0 {
				return failure("Table '%s' not found in any database", tableFilter)
			}
		}

		return success(map[string]interface{}{"databases": databases})
	}
}
