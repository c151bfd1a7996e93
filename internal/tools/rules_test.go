package tools

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRules_PaginatesWithCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rules", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"results": [{"id": "Rule.One", "severity": "HIGH", "enabled": true}], "next": "page-2"}`)
		case "page-2":
			fmt.Fprint(w, `{"results": [{"id": "Rule.Two", "severity": "LOW", "enabled": false}], "next": ""}`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer server.Close()

	handler := listRESTDetections(restClient(t, server), "/rules", "rules", ruleMetadataFields)

	first := envelope(t, mustCall(t, handler, callRequest("list_rules", nil)))
	assert.Equal(t, true, first["success"])
	assert.Equal(t, true, first["has_next_page"])
	assert.Equal(t, "page-2", first["next_cursor"])

	rules := first["rules"].([]interface{})
	require.Len(t, rules, 1)
	rule := rules[0].(map[string]interface{})
	assert.Equal(t, "Rule.One", rule["id"])
	assert.Equal(t, "HIGH", rule["severity"])
	// Trimmed to the metadata field set; body is never included.
	_, hasBody := rule["body"]
	assert.False(t, hasBody)

	second := envelope(t, mustCall(t, handler, callRequest("list_rules", map[string]interface{}{"cursor": "page-2"})))
	assert.Equal(t, true, second["success"])
	assert.Equal(t, false, second["has_next_page"])
}

func TestListRules_NullCursorNotForwarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasCursor := r.URL.Query()["cursor"]
		assert.False(t, hasCursor, "literal null cursor must not be forwarded")
		fmt.Fprint(w, `{"results": [], "next": ""}`)
	}))
	defer server.Close()

	handler := listRESTDetections(restClient(t, server), "/rules", "rules", ruleMetadataFields)

	for _, cursor := range []string{"null", "NULL", "Null"} {
		payload := envelope(t, mustCall(t, handler, callRequest("list_rules", map[string]interface{}{"cursor": cursor})))
		assert.Equal(t, true, payload["success"])
	}
}

func TestGetRuleByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "not found"}`)
	}))
	defer server.Close()

	handler := getRESTDetection(restClient(t, server), "/rules", "rule_id", "rule", "rule")
	payload := envelope(t, mustCall(t, handler, callRequest("get_rule_by_id", map[string]interface{}{"rule_id": "Missing.Rule"})))

	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "No rule found with ID: Missing.Rule", payload["message"])
}

func TestGetRuleByID_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "token expired")
	}))
	defer server.Close()

	handler := getRESTDetection(restClient(t, server), "/rules", "rule_id", "rule", "rule")
	payload := envelope(t, mustCall(t, handler, callRequest("get_rule_by_id", map[string]interface{}{"rule_id": "Some.Rule"})))

	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], "Invalid API Key Detected")
	assert.Contains(t, payload["message"], "token expired")
}

func TestDisableRule_FetchesThenUpdates(t *testing.T) {
	var sawPut bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"id": "Rule.One", "enabled": true, "severity": "HIGH"}`)
		case http.MethodPut:
			sawPut = true
			assert.Equal(t, "false", r.URL.Query().Get("run-tests-first"))
			fmt.Fprint(w, `{"id": "Rule.One", "enabled": false, "severity": "HIGH"}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	handler := disableRule(restClient(t, server))
	payload := envelope(t, mustCall(t, handler, callRequest("disable_rule", map[string]interface{}{"rule_id": "Rule.One"})))

	require.True(t, sawPut)
	assert.Equal(t, true, payload["success"])
	rule := payload["rule"].(map[string]interface{})
	assert.Equal(t, false, rule["enabled"])
}
