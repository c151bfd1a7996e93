package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// result marshals a payload into the JSON text envelope. The payload must
// already contain the success flag.
func result(payload map[string]interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// success builds a {"success": true, ...} envelope from the given fields.
func success(fields map[string]interface{}) (*mcp.CallToolResult, error) {
	payload := map[string]interface{}{"success": true}
	for key, value := range fields {
		payload[key] = value
	}
	return result(payload)
}

// failure builds a {"success": false, "message": ...} envelope. Expected
// failures are data, not protocol errors.
func failure(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return result(map[string]interface{}{
		"success": false,
		"message": fmt.Sprintf(format, args...),
	})
}
