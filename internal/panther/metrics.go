package panther

import (
	"context"
	"time"
)

// MetricSeries is one labeled data series of a metrics response.
type MetricSeries struct {
	EntityID  string             `json:"entityId,omitempty"`
	Label     string             `json:"label"`
	Value     float64            `json:"value"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// metricsVars builds the common metrics query input.
func metricsVars(from, to time.Time, intervalMinutes int) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"fromDate":          GraphQLDate(from),
			"toDate":            GraphQLDate(to),
			"intervalInMinutes": intervalMinutes,
		},
	}
}

// AlertsPerSeverity returns alert counts grouped by severity plus the total
// for the period.
func (c *Client) AlertsPerSeverity(ctx context.Context, from, to time.Time, intervalMinutes int) ([]MetricSeries, int64, error) {
	var resp struct {
		Metrics struct {
			AlertsPerSeverity []MetricSeries `json:"alertsPerSeverity"`
			TotalAlerts       int64          `json:"totalAlerts"`
		} `json:"metrics"`
	}
	if err := c.RunGraphQL(ctx, metricsAlertsPerSeverityQuery, metricsVars(from, to, intervalMinutes), &resp); err != nil {
		return nil, 0, err
	}
	return resp.Metrics.AlertsPerSeverity, resp.Metrics.TotalAlerts, nil
}

// AlertsPerRule returns alert counts grouped by detection rule.
func (c *Client) AlertsPerRule(ctx context.Context, from, to time.Time, intervalMinutes int) ([]MetricSeries, error) {
	var resp struct {
		Metrics struct {
			AlertsPerRule []MetricSeries `json:"alertsPerRule"`
		} `json:"metrics"`
	}
	if err := c.RunGraphQL(ctx, metricsAlertsPerRuleQuery, metricsVars(from, to, intervalMinutes), &resp); err != nil {
		return nil, err
	}
	return resp.Metrics.AlertsPerRule, nil
}

// BytesProcessedPerSource returns data ingestion volume grouped by log type
// and source.
func (c *Client) BytesProcessedPerSource(ctx context.Context, from, to time.Time, intervalMinutes int) ([]MetricSeries, error) {
	var resp struct {
		Metrics struct {
			BytesProcessedPerSource []MetricSeries `json:"bytesProcessedPerSource"`
		} `json:"metrics"`
	}
	if err := c.RunGraphQL(ctx, metricsBytesProcessedQuery, metricsVars(from, to, intervalMinutes), &resp); err != nil {
		return nil, err
	}
	return resp.Metrics.BytesProcessedPerSource, nil
}
