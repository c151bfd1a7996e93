package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/permissions"
	"panthermcp/internal/registry"
)

var (
	alertMetricIntervals = []int{15, 30, 60, 180, 360, 720, 1440}
	bytesMetricIntervals = []int{60, 720, 1440}
)

func registerMetricTools(reg *registry.Registry, client *panther.Client) {
	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_severity_alert_metrics",
			mcp.WithDescription("Get alert metrics grouped by severity for rule and policy alert types within a time period. Use this to identify hot spots, then list_alerts for details."),
			mcp.WithString("from_date", mcp.Description("Start date of the metrics period (ISO 8601). Defaults to the last complete UTC day.")),
			mcp.WithString("to_date", mcp.Description("End date of the metrics period (ISO 8601)")),
			mcp.WithArray("alert_types", mcp.Description("Alert types to include: Rule, Policy (default Rule)"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("severities", mcp.Description("Severities to include (default CRITICAL, HIGH, MEDIUM, LOW)"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithNumber("interval_in_minutes", mcp.Description("Aggregation interval: 15, 30, 60, 180, 360, 720, or 1440 (default 1440)")),
		),
		Handler:     traced("get_severity_alert_metrics", severityAlertMetrics(client)),
		Permissions: permissions.AllOf(permissions.MetricsRead),
		ReadOnly:    true,
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_rule_alert_metrics",
			mcp.WithDescription("Get alert metrics grouped by detection rule for all alert types within a time period"),
			mcp.WithString("from_date", mcp.Description("Start date of the metrics period (ISO 8601). Defaults to the last complete UTC day.")),
			mcp.WithString("to_date", mcp.Description("End date of the metrics period (ISO 8601)")),
			mcp.WithNumber("interval_in_minutes", mcp.Description("Aggregation interval: 15, 30, 60, 180, 360, 720, or 1440 (default 15)")),
			mcp.WithArray("rule_ids", mcp.Description("Rule IDs to get metrics for"), mcp.Items(map[string]any{"type": "string"})),
		),
		Handler:     traced("get_rule_alert_metrics", ruleAlertMetrics(client)),
		Permissions: permissions.AllOf(permissions.MetricsRead),
		ReadOnly:    true,
	})

	reg.RegisterTool(registry.ToolDef{
		Tool: mcp.NewTool("get_bytes_processed_per_log_type_and_source",
			mcp.WithDescription("Get data ingestion metrics showing total bytes processed per log type and source"),
			mcp.WithString("from_date", mcp.Description("Start date of the metrics period (ISO 8601). Defaults to the last complete UTC day.")),
			mcp.WithString("to_date", mcp.Description("End date of the metrics period (ISO 8601)")),
			mcp.WithNumber("interval_in_minutes", mcp.Description("Aggregation interval: 60, 720, or 1440 (default 1440)")),
		),
		Handler:     traced("get_bytes_processed_per_log_type_and_source", bytesProcessedMetrics(client)),
		Permissions: permissions.AllOf(permissions.MetricsRead),
		ReadOnly:    true,
	})
}

// metricsPeriod resolves the metrics window from the request, defaulting
// either bound to the last complete UTC day.
func metricsPeriod(args map[string]interface{}) (time.Time, time.Time, error) {
	defaultFrom, defaultTo := panther.TodayDateRange()

	from := defaultFrom
	if raw := stringArg(args, "from_date", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	to := defaultTo
	if raw := stringArg(args, "to_date", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

func validInterval(interval int, allowed []int) bool {
	for _, v := range allowed {
		if interval == v {
			return true
		}
	}
	return false
}

func severityAlertMetrics(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		interval := intArg(args, "interval_in_minutes", 1440)
		if !validInterval(interval, alertMetricIntervals) {
			return failure("Failed to fetch alerts per severity metrics: interval_in_minutes must be one of %v", alertMetricIntervals)
		}

		from, to, err := metricsPeriod(args)
		if err != nil {
			return failure("Failed to fetch alerts per severity metrics: %v", err)
		}

		alertTypes := stringSliceArgDefault(args, "alert_types", []string{"Rule"})
		severities := stringSliceArgDefault(args, "severities", []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"})

		series, totalAlerts, err := client.AlertsPerSeverity(ctx, from, to, interval)
		if err != nil {
			return failure("Failed to fetch alerts per severity metrics: %v", err)
		}

		// Series labels combine alert type and severity; keep only those
		// matching both filters.
		filtered := make([]panther.MetricSeries, 0, len(series))
		for _, item := range series {
			if labelMatchesAny(item.Label, alertTypes) && labelMatchesAny(item.Label, severities) {
				filtered = append(filtered, item)
			}
		}

		return success(map[string]interface{}{
			"alerts_per_severity": filtered,
			"total_alerts":        totalAlerts,
			"from_date":           panther.GraphQLDate(from),
			"to_date":             panther.GraphQLDate(to),
			"interval_in_minutes": interval,
		})
	}
}

func labelMatchesAny(label string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(label, term) {
			return true
		}
	}
	return false
}

func ruleAlertMetrics(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		interval := intArg(args, "interval_in_minutes", 15)
		if !validInterval(interval, alertMetricIntervals) {
			return failure("Failed to fetch rule alert metrics: interval_in_minutes must be one of %v", alertMetricIntervals)
		}

		from, to, err := metricsPeriod(args)
		if err != nil {
			return failure("Failed to fetch rule alert metrics: %v", err)
		}

		series, err := client.AlertsPerRule(ctx, from, to, interval)
		if err != nil {
			return failure("Failed to fetch rule alert metrics: %v", err)
		}

		ruleIDs := stringSliceArg(args, "rule_ids")
		if len(ruleIDs) > 0 {
			filtered := make([]panther.MetricSeries, 0, len(series))
			for _, item := range series {
				if contains(ruleIDs, item.EntityID) {
					filtered = append(filtered, item)
				}
			}
			series = filtered
		}

		fields := map[string]interface{}{
			"alerts_per_rule":     series,
			"total_alerts":        len(series),
			"from_date":           panther.GraphQLDate(from),
			"to_date":             panther.GraphQLDate(to),
			"interval_in_minutes": interval,
		}
		if len(ruleIDs) > 0 {
			fields["rule_ids"] = ruleIDs
		}
		return success(fields)
	}
}

func bytesProcessedMetrics(client *panther.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)

		interval := intArg(args, "interval_in_minutes", 1440)
		if !validInterval(interval, bytesMetricIntervals) {
			return failure("Failed to fetch bytes processed metrics: interval_in_minutes must be one of %v", bytesMetricIntervals)
		}

		from, to, err := metricsPeriod(args)
		if err != nil {
			return failure("Failed to fetch bytes processed metrics: %v", err)
		}

		series, err := client.BytesProcessedPerSource(ctx, from, to, interval)
		if err != nil {
			return failure("Failed to fetch bytes processed metrics: %v", err)
		}

		var totalBytes float64
		for _, item := range series {
			totalBytes += item.Value
		}

		return success(map[string]interface{}{
			"bytes_processed":     series,
			"total_bytes":         totalBytes,
			"from_date":           panther.GraphQLDate(from),
			"to_date":             panther.GraphQLDate(to),
			"interval_in_minutes": interval,
		})
	}
}
