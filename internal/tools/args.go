package tools

import "github.com/mark3labs/mcp-go/mcp"

// Argument accessors over the raw request map. MCP clients send JSON, so
// numbers arrive as float64 and lists as []interface{}; these helpers
// normalize them to Go types and apply defaults for absent values.

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	return request.GetArguments()
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// intArgPtr distinguishes "absent" from zero.
func intArgPtr(args map[string]interface{}, key string) *int {
	switch v := args[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

// boolArgPtr distinguishes "absent" from false.
func boolArgPtr(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringSliceArgDefault returns the fallback when the argument is absent.
// An explicitly empty list stays empty.
func stringSliceArgDefault(args map[string]interface{}, key string, fallback []string) []string {
	if _, present := args[key]; !present {
		return fallback
	}
	return stringSliceArg(args, key)
}
