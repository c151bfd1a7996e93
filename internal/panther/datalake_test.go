package panther

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGraphQLClient builds a client pointed at a fake GraphQL endpoint that
// replies with the given data payload.
func newGraphQLClient(t *testing.T, respond func(vars map[string]interface{}) interface{}) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		payload := map[string]interface{}{"data": respond(req.Variables)}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(server.Close)

	return NewClient(&Config{APIToken: "test-token", GraphQLAPIURL: server.URL})
}

func TestSubmitDataLakeQuery(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		input := vars["input"].(map[string]interface{})
		assert.Equal(t, "SELECT 1", input["sql"])
		assert.Equal(t, "panther_logs.public", input["databaseName"])
		return map[string]interface{}{
			"executeDataLakeQuery": map[string]interface{}{"id": "q-1"},
		}
	})

	queryID, err := client.SubmitDataLakeQuery(context.Background(), "SELECT 1", "panther_logs.public")
	require.NoError(t, err)
	assert.Equal(t, "q-1", queryID)
}

func TestSubmitDataLakeQuery_MissingID(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"executeDataLakeQuery": map[string]interface{}{},
		}
	})

	_, err := client.SubmitDataLakeQuery(context.Background(), "SELECT 1", "panther_logs.public")
	assert.ErrorIs(t, err, ErrNoQueryID)
}

func TestDataLakeQuery_Running(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"dataLakeQuery": map[string]interface{}{"id": "q-1", "status": "running"},
		}
	})

	snapshot, err := client.DataLakeQuery(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, QueryRunning, snapshot.Status)
	assert.Empty(t, snapshot.Rows)
}

func TestDataLakeQuery_Failed(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"dataLakeQuery": map[string]interface{}{
				"id":      "q-1",
				"status":  "failed",
				"message": "syntax error at line 1",
			},
		}
	})

	snapshot, err := client.DataLakeQuery(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, QueryFailed, snapshot.Status)
	assert.Equal(t, "syntax error at line 1", snapshot.Message)
}

func TestDataLakeQuery_Cancelled(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"dataLakeQuery": map[string]interface{}{"id": "q-1", "status": "cancelled"},
		}
	})

	snapshot, err := client.DataLakeQuery(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, QueryCancelled, snapshot.Status)
}

func TestDataLakeQuery_SucceededCarriesRowsAndStats(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		assert.Equal(t, "q-1", vars["id"])
		return map[string]interface{}{
			"dataLakeQuery": map[string]interface{}{
				"id":     "q-1",
				"status": "succeeded",
				"results": map[string]interface{}{
					"edges": []interface{}{
						map[string]interface{}{"node": map[string]interface{}{"col": float64(1)}},
					},
					"pageInfo":   map[string]interface{}{"hasNextPage": true, "endCursor": "cursor-1"},
					"columnInfo": map[string]interface{}{"order": []string{"col"}, "types": map[string]string{"col": "bigint"}},
					"stats":      map[string]interface{}{"bytesScanned": 1024, "executionTime": 42, "rowCount": 1},
				},
			},
		}
	})

	snapshot, err := client.DataLakeQuery(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, QuerySucceeded, snapshot.Status)
	require.Len(t, snapshot.Rows, 1)
	assert.Equal(t, float64(1), snapshot.Rows[0]["col"])
	assert.Equal(t, []string{"col"}, snapshot.Columns.Order)
	assert.Equal(t, int64(1024), snapshot.Stats.BytesScanned)
	assert.Equal(t, int64(1), snapshot.Stats.RowCount)
	assert.True(t, snapshot.HasNextPage)
	assert.Equal(t, "cursor-1", snapshot.EndCursor)
}

func TestDataLakeQuery_NotFound(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{"dataLakeQuery": nil}
	})

	_, err := client.DataLakeQuery(context.Background(), "missing")

	var notFound *QueryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No query found with ID: missing", notFound.Error())
}

func TestListDatabaseEntities(t *testing.T) {
	client := newGraphQLClient(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"dataLakeDatabases": []interface{}{
				map[string]interface{}{
					"name":        "panther_logs.public",
					"description": "All log data",
					"tables": []interface{}{
						map[string]interface{}{
							"name": "aws_cloudtrail",
							"columns": []interface{}{
								map[string]interface{}{"name": "p_event_time", "type": "timestamp"},
							},
						},
					},
				},
			},
		}
	})

	dbs, err := client.ListDatabaseEntities(context.Background())
	require.NoError(t, err)
	require.Len(t, dbs, 1)
	assert.Equal(t, "panther_logs.public", dbs[0].Name)
	require.Len(t, dbs[0].Tables, 1)
	assert.Equal(t, "aws_cloudtrail", dbs[0].Tables[0].Name)
}
