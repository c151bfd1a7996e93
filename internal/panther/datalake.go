package panther

import (
	"context"

	"panthermcp/pkg/logging"
)

// QueryStatus is the data lake's report on a submitted query.
type QueryStatus string

const (
	QueryRunning   QueryStatus = "running"
	QueryFailed    QueryStatus = "failed"
	QueryCancelled QueryStatus = "cancelled"
	QuerySucceeded QueryStatus = "succeeded"
)

// ColumnInfo describes the result columns of a completed query.
type ColumnInfo struct {
	Order []string          `json:"order"`
	Types map[string]string `json:"types"`
}

// QueryStats carries execution statistics of a completed query.
type QueryStats struct {
	BytesScanned  int64 `json:"bytesScanned"`
	ExecutionTime int64 `json:"executionTime"`
	RowCount      int64 `json:"rowCount"`
}

// QuerySnapshot is a point-in-time view of a data lake query: its status plus,
// when it has completed, the first page of rows and result metadata.
type QuerySnapshot struct {
	ID          string
	Status      QueryStatus
	Message     string
	Rows        []map[string]interface{}
	Columns     ColumnInfo
	Stats       QueryStats
	HasNextPage bool
	EndCursor   string
}

// SubmitDataLakeQuery submits SQL against the data lake and returns the job
// ID to poll for results. An accepted submission without an ID is ErrNoQueryID.
func (c *Client) SubmitDataLakeQuery(ctx context.Context, sql, database string) (string, error) {
	var resp struct {
		ExecuteDataLakeQuery struct {
			ID string `json:"id"`
		} `json:"executeDataLakeQuery"`
	}

	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"sql":          sql,
			"databaseName": database,
		},
	}
	if err := c.RunGraphQL(ctx, executeDataLakeQueryMutation, vars, &resp); err != nil {
		return "", err
	}
	if resp.ExecuteDataLakeQuery.ID == "" {
		return "", ErrNoQueryID
	}

	logging.Info("DataLake", "Submitted query %s", resp.ExecuteDataLakeQuery.ID)
	return resp.ExecuteDataLakeQuery.ID, nil
}

// DataLakeQuery fetches the current state of a submitted query. A job the
// lake has no record of is a QueryNotFoundError. Polling cadence is the
// caller's concern; this is a single fetch.
func (c *Client) DataLakeQuery(ctx context.Context, queryID string) (*QuerySnapshot, error) {
	var resp struct {
		DataLakeQuery *struct {
			ID      string `json:"id"`
			Status  string `json:"status"`
			Message string `json:"message"`
			Results struct {
				Edges []struct {
					Node map[string]interface{} `json:"node"`
				} `json:"edges"`
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				ColumnInfo ColumnInfo `json:"columnInfo"`
				Stats      QueryStats `json:"stats"`
			} `json:"results"`
		} `json:"dataLakeQuery"`
	}

	vars := map[string]interface{}{"id": queryID, "root": false}
	if err := c.RunGraphQL(ctx, dataLakeQueryQuery, vars, &resp); err != nil {
		return nil, err
	}

	query := resp.DataLakeQuery
	if query == nil || query.ID == "" {
		return nil, &QueryNotFoundError{QueryID: queryID}
	}

	snapshot := &QuerySnapshot{
		ID:      query.ID,
		Status:  QueryStatus(query.Status),
		Message: query.Message,
	}

	switch snapshot.Status {
	case QueryRunning, QueryFailed, QueryCancelled:
		return snapshot, nil
	}

	// Any terminal status other than failed/cancelled is treated as success.
	snapshot.Status = QuerySucceeded
	snapshot.Rows = make([]map[string]interface{}, 0, len(query.Results.Edges))
	for _, edge := range query.Results.Edges {
		snapshot.Rows = append(snapshot.Rows, edge.Node)
	}
	snapshot.Columns = query.Results.ColumnInfo
	snapshot.Stats = query.Results.Stats
	snapshot.HasNextPage = query.Results.PageInfo.HasNextPage
	snapshot.EndCursor = query.Results.PageInfo.EndCursor
	return snapshot, nil
}

// DatabaseColumn describes a single column of a data lake table.
type DatabaseColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// DatabaseTable describes a data lake table and its columns.
type DatabaseTable struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Columns     []DatabaseColumn `json:"columns"`
}

// Database describes a data lake database and its tables.
type Database struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tables      []DatabaseTable `json:"tables"`
}

// ListDatabaseEntities returns the full catalog of databases, tables, and
// columns available in the data lake.
func (c *Client) ListDatabaseEntities(ctx context.Context) ([]Database, error) {
	var resp struct {
		DataLakeDatabases []Database `json:"dataLakeDatabases"`
	}
	if err := c.RunGraphQL(ctx, allDatabaseEntitiesQuery, nil, &resp); err != nil {
		return nil, err
	}
	return resp.DataLakeDatabases, nil
}
