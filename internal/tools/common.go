package tools

import "github.com/mark3labs/mcp-go/server"

type toolHandler = server.ToolHandlerFunc

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}

// resultsList extracts the "results" list of a REST list response.
func resultsList(body map[string]interface{}) []interface{} {
	if results, ok := body["results"].([]interface{}); ok {
		return results
	}
	return []interface{}{}
}

// nextCursor extracts the "next" cursor of a REST list response; empty means
// the listing is exhausted.
func nextCursor(body map[string]interface{}) string {
	if next, ok := body["next"].(string); ok {
		return next
	}
	return ""
}
