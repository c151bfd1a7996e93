package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDataLake serves the data lake GraphQL operations with a scriptable
// query state.
type fakeDataLake struct {
	queryState map[string]interface{}
}

func (f *fakeDataLake) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var data interface{}
		switch {
		case strings.Contains(req.Query, "ExecuteDataLakeQuery"):
			input := req.Variables["input"].(map[string]interface{})
			assert.Equal(t, "SELECT 1", input["sql"])
			assert.Equal(t, "panther_logs.public", input["databaseName"])
			data = map[string]interface{}{
				"executeDataLakeQuery": map[string]interface{}{"id": "q-1"},
			}
		case strings.Contains(req.Query, "GetDataLakeQuery"):
			if req.Variables["id"] == "q-1" {
				data = map[string]interface{}{"dataLakeQuery": f.queryState}
			} else {
				data = map[string]interface{}{"dataLakeQuery": nil}
			}
		default:
			t.Fatalf("unexpected query: %s", req.Query)
		}

		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": data}))
	})
}

func TestDataLakeQueryLifecycle(t *testing.T) {
	lake := &fakeDataLake{}
	server := httptest.NewServer(lake.handler(t))
	defer server.Close()
	client := gqlClient(t, server)

	// Submit.
	submit := envelope(t, mustCall(t, executeDataLakeQuery(client), callRequest("execute_data_lake_query", map[string]interface{}{
		"sql":           "SELECT 1",
		"database_name": "panther_logs.public",
	})))
	require.Equal(t, true, submit["success"])
	assert.Equal(t, "q-1", submit["query_id"])

	// First poll: still running.
	lake.queryState = map[string]interface{}{"id": "q-1", "status": "running"}
	poll := envelope(t, mustCall(t, getDataLakeQueryResults(client), callRequest("get_data_lake_query_results", map[string]interface{}{
		"query_id": "q-1",
	})))
	assert.Equal(t, true, poll["success"])
	assert.Equal(t, "running", poll["status"])
	assert.Equal(t, "Query is still running", poll["message"])

	// Second poll: completed with one row.
	lake.queryState = map[string]interface{}{
		"id":     "q-1",
		"status": "succeeded",
		"results": map[string]interface{}{
			"edges": []interface{}{
				map[string]interface{}{"node": map[string]interface{}{"n": 1}},
			},
			"pageInfo":   map[string]interface{}{"hasNextPage": false, "endCursor": ""},
			"columnInfo": map[string]interface{}{"order": []string{"n"}, "types": map[string]string{"n": "bigint"}},
			"stats":      map[string]interface{}{"bytesScanned": 0, "executionTime": 5, "rowCount": 1},
		},
	}
	done := envelope(t, mustCall(t, getDataLakeQueryResults(client), callRequest("get_data_lake_query_results", map[string]interface{}{
		"query_id": "q-1",
	})))
	assert.Equal(t, true, done["success"])
	assert.Equal(t, "succeeded", done["status"])

	rows := done["results"].([]interface{})
	require.Len(t, rows, 1)

	stats := done["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["row_count"])

	columnInfo := done["column_info"].(map[string]interface{})
	assert.Equal(t, []interface{}{"n"}, columnInfo["order"])
}

func TestDataLakeQueryResults_UnknownID(t *testing.T) {
	lake := &fakeDataLake{}
	server := httptest.NewServer(lake.handler(t))
	defer server.Close()

	payload := envelope(t, mustCall(t, getDataLakeQueryResults(gqlClient(t, server)), callRequest("get_data_lake_query_results", map[string]interface{}{
		"query_id": "nope",
	})))
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "No query found with ID: nope", payload["message"])
}

func TestDataLakeQueryResults_FailedDefaultMessage(t *testing.T) {
	lake := &fakeDataLake{queryState: map[string]interface{}{"id": "q-1", "status": "failed"}}
	server := httptest.NewServer(lake.handler(t))
	defer server.Close()

	payload := envelope(t, mustCall(t, getDataLakeQueryResults(gqlClient(t, server)), callRequest("get_data_lake_query_results", map[string]interface{}{
		"query_id": "q-1",
	})))
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "failed", payload["status"])
	assert.Equal(t, "Query failed", payload["message"])
}

func TestDataLakeQueryResults_Cancelled(t *testing.T) {
	lake := &fakeDataLake{queryState: map[string]interface{}{"id": "q-1", "status": "cancelled"}}
	server := httptest.NewServer(lake.handler(t))
	defer server.Close()

	payload := envelope(t, mustCall(t, getDataLakeQueryResults(gqlClient(t, server)), callRequest("get_data_lake_query_results", map[string]interface{}{
		"query_id": "q-1",
	})))
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "cancelled", payload["status"])
	assert.Equal(t, "Query was cancelled", payload["message"])
}

func TestDataLakeEntities_TableFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"dataLakeDatabases": []interface{}{
				map[string]interface{}{
					"name": "panther_logs.public",
					"tables": []interface{}{
						map[string]interface{}{"name": "aws_cloudtrail"},
						map[string]interface{}{"name": "okta_systemlog"},
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": data}))
	}))
	defer server.Close()
	client := gqlClient(t, server)

	payload := envelope(t, mustCall(t, getDataLakeEntities(client), callRequest("get_data_lake_dbs_tables_columns", map[string]interface{}{
		"table": "OKTA_SYSTEMLOG",
	})))
	require.Equal(t, true, payload["success"])

	databases := payload["databases"].([]interface{})
	require.Len(t, databases, 1)
	tables := databases[0].(map[string]interface{})["tables"].([]interface{})
	require.Len(t, tables, 1)
	assert.Equal(t, "okta_systemlog", tables[0].(map[string]interface{})["name"])

	missing := envelope(t, mustCall(t, getDataLakeEntities(client), callRequest("get_data_lake_dbs_tables_columns", map[string]interface{}{
		"table": "absent",
	})))
	assert.Equal(t, false, missing["success"])
	assert.Equal(t, "Table 'absent' not found in any database", missing["message"])
}
