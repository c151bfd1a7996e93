package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panthermcp/internal/registry"
)

func TestRegisterAll(t *testing.T) {
	reg := registry.New()
	RegisterAll(reg)

	assert.Equal(t, []string{
		"get_log_sources_report",
		"list_and_prioritize_alerts",
		"list_detection_rule_errors",
	}, reg.ListPromptNames())
}

func promptRequest(args map[string]string) mcp.GetPromptRequest {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = args
	return req
}

func TestLogSourcesReport(t *testing.T) {
	result, err := logSourcesReport(context.Background(), promptRequest(nil))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "List log sources")
	assert.Contains(t, content.Text, "classification_failures")
}

func TestDetectionRuleErrors_InterpolatesDates(t *testing.T) {
	result, err := detectionRuleErrors(context.Background(), promptRequest(map[string]string{
		"start_date": "2025-04-22 00:00:00Z",
		"end_date":   "2025-04-23 00:00:00Z",
	}))
	require.NoError(t, err)

	content := result.Messages[0].Content.(mcp.TextContent)
	assert.Contains(t, content.Text, "between 2025-04-22 00:00:00Z and 2025-04-23 00:00:00Z")
}

func TestDetectionRuleErrors_RequiresDates(t *testing.T) {
	_, err := detectionRuleErrors(context.Background(), promptRequest(nil))
	assert.Error(t, err)
}

func TestPrioritizeAlerts_InterpolatesDates(t *testing.T) {
	result, err := prioritizeAlerts(context.Background(), promptRequest(map[string]string{
		"start_date": "2025-04-22 00:00:00Z",
		"end_date":   "2025-04-23 00:00:00Z",
	}))
	require.NoError(t, err)

	content := result.Messages[0].Content.(mcp.TextContent)
	assert.Contains(t, content.Text, "Get all alert IDs between 2025-04-22 00:00:00Z and 2025-04-23 00:00:00Z")
	assert.Contains(t, content.Text, "entity group")
}
