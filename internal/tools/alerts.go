package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
	"panthermcp/pkg/logging"
)

const (
	maxAlertPageSize   = 50
	maxAlertEventLimit = 10
)

var validAlertStatuses = []string{"OPEN", "TRIAGED", "RESOLVED", "CLOSED"}

// subtypesByAlertType lists the subtypes each alert type accepts. SYSTEM_ERROR
// accepts none.
var subtypesByAlertType = map[string][]string{
	"ALERT":           {"POLICY", "RULE", "SCHEDULED_RULE"},
	"DETECTION_ERROR": {"RULE_ERROR", "SCHEDULED_RULE_ERROR"},
	"SYSTEM_ERROR":    {},
}

func registerAlertTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_alerts",
			mcp.WithDescription("List alerts with comprehensive filtering options. Defaults to the last complete UTC day when no detection ID or date range is given."),
			mcp.WithString("start_date", mcp.Description("Optional start date in ISO 8601 format (e.g. \"2024-03-20T00:00:00Z\")")),
			mcp.WithString("end_date", mcp.Description("Optional end date in ISO 8601 format (e.g. \"2024-03-21T00:00:00Z\")")),
			mcp.WithArray("severities", mcp.Description("Severities to filter by (default CRITICAL, HIGH, MEDIUM, LOW)"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("statuses", mcp.Description("Statuses to filter by (default OPEN, TRIAGED, RESOLVED, CLOSED)"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("cursor", mcp.Description("Cursor for pagination from a previous query")),
			mcp.WithString("detection_id", mcp.Description("Detection ID to filter alerts by. If provided, a date range is not required.")),
			mcp.WithNumber("event_count_max", mcp.Description("Maximum number of events that returned alerts must have")),
			mcp.WithNumber("event_count_min", mcp.Description("Minimum number of events that returned alerts must have")),
			mcp.WithArray("log_sources", mcp.Description("Log source IDs to filter alerts by"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("log_types", mcp.Description("Log type names to filter alerts by"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("name_contains", mcp.Description("Substring to search for in alert titles")),
			mcp.WithNumber("page_size", mcp.Description("Results per page (default 25, maximum 50)")),
			mcp.WithArray("resource_types", mcp.Description("AWS resource type names to filter alerts by"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("subtypes", mcp.Description("Alert subtypes; valid values depend on alert_type"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("alert_type", mcp.Description("One of ALERT, DETECTION_ERROR, SYSTEM_ERROR (default ALERT)")),
		),
		Handler:     traced("list_alerts", listAlerts(client)),
		Permissions: permissions.AllOf(permissions.AlertRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_alert_by_id",
			mcp.WithDescription("Get detailed information about a specific alert by ID"),
			mcp.WithString("alert_id", mcp.Required(), mcp.Description("The ID of the alert to fetch")),
		),
		Handler:     traced("get_alert_by_id", getAlertByID(client)),
		Permissions: permissions.AllOf(permissions.AlertRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("list_alert_comments",
			mcp.WithDescription("Get all comments for a specific alert by ID"),
			mcp.WithString("alert_id", mcp.Required(), mcp.Description("The ID of the alert to get comments for")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of comments to return (default 25)")),
		),
		Handler:     traced("list_alert_comments", listAlertComments(client)),
		Permissions: permissions.AllOf(permissions.AlertRead),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("update_alert_status",
			mcp.WithDescription("Update the status of one or more alerts"),
			mcp.WithArray("alert_ids", mcp.Description("Alert IDs to update"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("status", mcp.Required(), mcp.Description("New status: OPEN, TRIAGED, RESOLVED, or CLOSED")),
		),
		Handler:     traced("update_alert_status", updateAlertStatus(client)),
		Permissions: permissions.AllOf(permissions.AlertModify),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("add_alert_comment",
			mcp.WithDescription("Add a comment to an alert. Comments support Markdown formatting."),
			mcp.WithString("alert_id", mcp.Required(), mcp.Description("The ID of the alert to comment on")),
			mcp.WithString("comment", mcp.Required(), mcp.Description("The comment text to add")),
		),
		Handler:     traced("add_alert_comment", addAlertComment(client)),
		Permissions: permissions.AllOf(permissions.AlertModify),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("update_alert_assignee_by_id",
			mcp.WithDescription("Update the assignee of one or more alerts through the assignee's user ID"),
			mcp.WithArray("alert_ids", mcp.Description("Alert IDs to update"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("assignee_id", mcp.Required(), mcp.Description("The ID of the user to assign the alerts to")),
		),
		Handler:     traced("update_alert_assignee_by_id", updateAlertAssignee(client)),
		Permissions: permissions.AllOf(permissions.AlertModify),
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_alert_events",
			mcp.WithDescription("Get events for a specific alert by ID. Order is best effort; pagination is not supported."),
			mcp.WithString("alert_id", mcp.Required(), mcp.Description("The ID of the alert to get events for")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of events to return (default 10, maximum 10)")),
		),
		Handler:     traced("get_alert_events", getAlertEvents(client)),
		Permissions: permissions.AllOf(permissions.AlertRead),
	})
}

type alertPage struct {
	Alerts struct {
		Edges []struct {
			Node map[string]interface{} `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasNextPage     bool    `json:"hasNextPage"`
			EndCursor       *string `json:"endCursor"`
			HasPreviousPage bool    `json:"hasPreviousPage"`
			StartCursor     *string `json:"startCursor"`
		} `json:"pageInfo"`
	} `json:"alerts"`
}

func listAlerts(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		pageSize := intArg(args, "page_size", 25)
		if pageSize < 1 {
			return failure("Failed to fetch alerts: page_size must be greater than 0")
		}
		if pageSize > maxAlertPageSize {
			logging.Warn("Tools", "page_size %d exceeds maximum of %d, using %d instead", pageSize, maxAlertPageSize, maxAlertPageSize)
			pageSize = maxAlertPageSize
		}

		alertType := stringArg(args, "alert_type", "ALERT")
		allowedSubtypes, ok := subtypesByAlertType[alertType]
		if !ok {
			return failure("Failed to fetch alerts: alert_type must be one of [ALERT DETECTION_ERROR SYSTEM_ERROR]")
		}

		subtypes := stringSliceArg(args, "subtypes")
		if len(subtypes) > 0 {
			if alertType == "SYSTEM_ERROR" {
				return failure("Failed to fetch alerts: subtypes are not allowed when alert_type is SYSTEM_ERROR")
			}
			for _, subtype := range subtypes {
				if !contains(allowedSubtypes, subtype) {
					return failure("Failed to fetch alerts: invalid subtype %q for alert_type=%s. Valid subtypes are: %v", subtype, alertType, allowedSubtypes)
				}
			}
		}

		input := map[string]interface{}{
			"pageSize": pageSize,
			"sortBy":   "createdAt",
			"sortDir":  "descending",
			"type":     alertType,
		}

		// The API requires either a detection ID or a date range.
		if detectionID := stringArg(args, "detection_id", ""); detectionID != "" {
			input["detectionId"] = detectionID
		} else {
			startDate := stringArg(args, "start_date", "")
			endDate := stringArg(args, "end_date", "")
			if startDate == "" || endDate == "" {
				start, end := panther.TodayDateRange()
				startDate = panther.GraphQLDate(start)
				endDate = panther.GraphQLDate(end)
				logging.Info("Tools", "No detection ID and missing date range, using last 24 hours: %s to %s", startDate, endDate)
			}
			input["createdAtAfter"] = startDate
			input["createdAtBefore"] = endDate
		}

		if cursor := stringArg(args, "cursor", ""); cursor != "" {
			input["cursor"] = cursor
		}
		if severities := stringSliceArgDefault(args, "severities", []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}); len(severities) > 0 {
			input["severities"] = severities
		}
		if statuses := stringSliceArgDefault(args, "statuses", validAlertStatuses); len(statuses) > 0 {
			input["statuses"] = statuses
		}
		if max := intArgPtr(args, "event_count_max"); max != nil {
			input["eventCountMax"] = *max
		}
		if min := intArgPtr(args, "event_count_min"); min != nil {
			input["eventCountMin"] = *min
		}
		if logSources := stringSliceArg(args, "log_sources"); len(logSources) > 0 {
			input["logSources"] = logSources
		}
		if logTypes := stringSliceArg(args, "log_types"); len(logTypes) > 0 {
			input["logTypes"] = logTypes
		}
		if nameContains := stringArg(args, "name_contains", ""); nameContains != "" {
			input["nameContains"] = nameContains
		}
		if resourceTypes := stringSliceArg(args, "resource_types"); len(resourceTypes) > 0 {
			input["resourceTypes"] = resourceTypes
		}
		if len(subtypes) > 0 {
			input["subtypes"] = subtypes
		}

		var page alertPage
		if err := client.AlertsPage(ctx, input, &page); err != nil {
			return failure("Failed to fetch alerts: %v", err)
		}

		alerts := make([]map[string]interface{}, 0, len(page.Alerts.Edges))
		for _, edge := range page.Alerts.Edges {
			alerts = append(alerts, edge.Node)
		}

		return success(map[string]interface{}{
			"alerts":            alerts,
			"total_alerts":      len(alerts),
			"has_next_page":     page.Alerts.PageInfo.HasNextPage,
			"has_previous_page": page.Alerts.PageInfo.HasPreviousPage,
			"end_cursor":        page.Alerts.PageInfo.EndCursor,
			"start_cursor":      page.Alerts.PageInfo.StartCursor,
		})
	}
}

func getAlertByID(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alertID, err := request.RequireString("alert_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		alert, err := client.AlertByID(ctx, alertID)
		if err != nil {
			return failure("Failed to fetch alert details: %v", err)
		}
		if alert == nil {
			return failure("No alert found with ID: %s", alertID)
		}
		return success(map[string]interface{}{"alert": alert})
	}
}

func listAlertComments(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alertID, err := request.RequireString("alert_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := intArg(arguments(request), "limit", 25)

		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch alert comments: %v", err)
		}
		defer session.Close()

		params := map[string]string{
			"alert-id": alertID,
			"limit":    fmt.Sprintf("%d", limit),
		}
		body, status, err := session.Get(ctx, "/alert-comments", params, http.StatusOK, http.StatusBadRequest)
		if err != nil {
			return failure("Failed to fetch alert comments: %v", err)
		}
		if status == http.StatusBadRequest {
			return failure("Bad request when fetching comments for alert ID: %s", alertID)
		}

		comments := resultsList(body)
		return success(map[string]interface{}{
			"comments":       comments,
			"total_comments": len(comments),
		})
	}
}

func updateAlertStatus(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !contains(validAlertStatuses, status) {
			return failure("Failed to update alert status: status must be one of %v", validAlertStatuses)
		}

		alertIDs := stringSliceArg(args, "alert_ids")
		if len(alertIDs) == 0 {
			return failure("Failed to update alert status: alert_ids must not be empty")
		}

		alerts, err := client.UpdateAlertStatus(ctx, alertIDs, status)
		if err != nil {
			return failure("Failed to update alert status: %v", err)
		}
		return success(map[string]interface{}{"alerts": alerts})
	}
}

func addAlertComment(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alertID, err := request.RequireString("alert_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		comment, err := request.RequireString("comment")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		created, err := client.AddAlertComment(ctx, alertID, comment)
		if err != nil {
			return failure("Failed to add alert comment: %v", err)
		}
		return success(map[string]interface{}{"comment": created})
	}
}

func updateAlertAssignee(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		assigneeID, err := request.RequireString("assignee_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		alertIDs := stringSliceArg(args, "alert_ids")
		if len(alertIDs) == 0 {
			return failure("Failed to update alert assignee: alert_ids must not be empty")
		}

		alerts, err := client.UpdateAlertAssignee(ctx, alertIDs, assigneeID)
		if err != nil {
			return failure("Failed to update alert assignee: %v", err)
		}
		return success(map[string]interface{}{"alerts": alerts})
	}
}

func getAlertEvents(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alertID, err := request.RequireString("alert_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		limit := intArg(arguments(request), "limit", 10)
		if limit < 1 {
			return failure("Failed to fetch alert events: limit must be greater than 0")
		}
		if limit > maxAlertEventLimit {
			logging.Warn("Tools", "limit %d exceeds maximum of %d, using %d instead", limit, maxAlertEventLimit, maxAlertEventLimit)
			limit = maxAlertEventLimit
		}

		session, err := client.OpenRest(ctx)
		if err != nil {
			return failure("Failed to fetch alert events: %v", err)
		}
		defer session.Close()

		params := map[string]string{"limit": fmt.Sprintf("%d", limit)}
		body, status, err := session.Get(ctx, "/alerts/"+alertID+"/events", params, http.StatusOK, http.StatusNotFound)
		if err != nil {
			return failure("Failed to fetch alert events: %v", err)
		}
		if status == http.StatusNotFound {
			return failure("No alert found with ID: %s", alertID)
		}

		events := resultsList(body)
		return success(map[string]interface{}{
			"events":       events,
			"total_events": len(events),
		})
	}
}
