package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

// ruleMetadataFields is the trimmed field set returned by detection listing
// tools, keeping response sizes manageable.
var ruleMetadataFields = []string{
	"id", "description", "displayName", "enabled", "severity",
	"logTypes", "tags", "reports", "managed", "createdAt", "lastModified",
}

var scheduledRuleMetadataFields = []string{
	"id", "description", "displayName", "enabled", "severity",
	"scheduledQueries", "tags", "reports", "managed", "createdAt", "lastModified",
}

var policyMetadataFields = []string{
	"id", "description", "displayName", "enabled", "severity",
	"resourceTypes", "tags", "reports", "managed", "createdAt", "lastModified",
}

func registerRuleTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_rules",
			mcp.WithDescription("List all detection rules with optional pagination"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 100)")),
		),
		Handler:     traced("list_rules", listRESTDetections(client, "/rules", "rules", ruleMetadataFields)),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_rule_by_id",
			mcp.WithDescription("Get detailed information about a detection rule, including the rule body and tests"),
			mcp.WithString("rule_id", mcp.Required(), mcp.Description("The ID of the rule to fetch")),
		),
		Handler:     traced("get_rule_by_id", getRESTDetection(client, "/rules", "rule_id", "rule", "rule")),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("disable_rule",
			mcp.WithDescription("Disable a detection rule by setting enabled to false"),
			mcp.WithString("rule_id", mcp.Required(), mcp.Description("The ID of the rule to disable")),
		),
		Handler:     traced("disable_rule", disableRule(client)),
		Permissions: permissions.AllOf(permissions.RuleModify),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_scheduled_rules",
			mcp.WithDescription("List all scheduled rules with optional pagination"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 100)")),
		),
		Handler:     traced("list_scheduled_rules", listRESTDetections(client, "/scheduled-rules", "scheduled_rules", scheduledRuleMetadataFields)),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_scheduled_rule_by_id",
			mcp.WithDescription("Get detailed information about a scheduled rule by ID including the rule body and tests"),
			mcp.WithString("rule_id", mcp.Required(), mcp.Description("The ID of the scheduled rule to fetch")),
		),
		Handler:     traced("get_scheduled_rule_by_id", getRESTDetection(client, "/scheduled-rules", "rule_id", "scheduled_rule", "scheduled rule")),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_simple_rules",
			mcp.WithDescription("List all simple rules with optional pagination"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 100)")),
		),
		Handler:     traced("list_simple_rules", listRESTDetections(client, "/simple-rules", "simple_rules", ruleMetadataFields)),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_simple_rule_by_id",
			mcp.WithDescription("Get detailed information about a simple rule by ID including the rule body and tests"),
			mcp.WithString("rule_id", mcp.Required(), mcp.Description("The ID of the simple rule to fetch")),
		),
		Handler:     traced("get_simple_rule_by_id", getRESTDetection(client, "/simple-rules", "rule_id", "simple_rule", "simple rule")),
		Permissions: permissions.AllOf(permissions.RuleRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_policies",
			mcp.WithDescription("List all cloud security policies with optional pagination"),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 100)")),
		),
		Handler:     traced("list_policies", listRESTDetections(client, "/policies", "policies", policyMetadataFields)),
		Permissions: permissions.AllOf(permissions.PolicyRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_policy_by_id",
			mcp.WithDescription("Get detailed information about a policy by ID including the policy body and tests"),
			mcp.WithString("policy_id", mcp.Required(), mcp.Description("The ID of the policy to fetch")),
		),
		Handler:     traced("get_policy_by_id", getRESTDetection(client, "/policies", "policy_id", "policy", "policy")),
		Permissions: permissions.AllOf(permissions.PolicyRead),
	})
}

// listParams builds the query parameters for a cursor-paginated REST listing.
// A cursor is only forwarded when it is non-empty and not the literal string
// "null", which some clients echo back from a JSON null.
func listParams(args map[string]interface{}) map[string]string {
	params := map[string]string{
		"limit": fmt.Sprintf("%d", intArg(args, "limit", 100)),
	}
	if cursor := stringArg(args, "cursor", ""); cursor != "" && strings.ToLower(cursor) != "null" {
		params["cursor"] = cursor
	}
	return params
}

// pickFields trims each item down to the given field set. Missing fields are
// carried as null so the shape stays stable across items.
func pickFields(items []interface{}, fields []string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		trimmed := make(map[string]interface{}, len(fields))
		for _, field := range fields {
			trimmed[field] = record[field]
		}
		out = append(out, trimmed)
	}
	return out
}

// listRESTDetections builds a handler for the cursor-paginated detection
// listing endpoints, which all share the same response shape.
func listRESTDetections(client *panther.Client, path, resultKey string, fields []string) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to list %s: %v", resultKey, err)
		}
		defer session.Close()

		body, _, err := session.Get(ctx, path, listParams(arguments(request)))
		if err != nil {
			return failure("Failed to list %s: %v", resultKey, err)
		}

		items := pickFields(resultsList(body), fields)
		next := nextCursor(body)

		return success(map[string]interface{}{
			resultKey:            items,
			"total_" + resultKey: len(items),
			"has_next_page":      next != "",
			"next_cursor":        next,
		})
	}
}

// getRESTDetection builds a handler for the by-ID detection endpoints; 404 is
// reported as a not-found envelope, not an error.
func getRESTDetection(client *panther.Client, path, idArg, resultKey, displayName string) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString(idArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch %s details: %v", displayName, err)
		}
		defer session.Close()

		body, status, err := session.Get(ctx, path+"/"+id, nil, http.StatusOK, http.StatusNotFound)
		if err != nil {
			return failure("Failed to fetch %s details: %v", displayName, err)
		}
		if status == http.StatusNotFound {
			return failure("No %s found with ID: %s", displayName, id)
		}

		return success(map[string]interface{}{resultKey: body})
	}
}

func disableRule(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ruleID, err := request.RequireString("rule_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to disable rule: %v", err)
		}
		defer session.Close()

		// Fetch the current rule first so the update preserves every other
		// field.
		current, status, err := session.Get(ctx, "/rules/"+ruleID, nil, http.StatusOK, http.StatusNotFound)
		if err != nil {
			return failure("Failed to disable rule: %v", err)
		}
		if status == http.StatusNotFound {
			return failure("Rule with ID %s not found", ruleID)
		}

		current["enabled"] = false

		// Skip tests for a plain disable.
		params := map[string]string{"run-tests-first": "false"}
		updated, _, err := session.Put(ctx, "/rules/"+ruleID, current, params)
		if err != nil {
			return failure("Failed to disable rule: %v", err)
		}

		return success(map[string]interface{}{"rule": updated})
	}
}
