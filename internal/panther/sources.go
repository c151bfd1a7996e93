package panther

import "context"

// SourcePage is one page of log source integrations.
type SourcePage struct {
	Sources     []map[string]interface{}
	HasNextPage bool
	HasPrevPage bool
	EndCursor   *string
	StartCursor *string
}

// LogSources fetches one page of log source integrations, optionally resuming
// from a cursor.
func (c *Client) LogSources(ctx context.Context, cursor string) (*SourcePage, error) {
	var resp struct {
		Sources struct {
			Edges []struct {
				Node map[string]interface{} `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage     bool    `json:"hasNextPage"`
				HasPreviousPage bool    `json:"hasPreviousPage"`
				StartCursor     *string `json:"startCursor"`
				EndCursor       *string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"sources"`
	}

	input := map[string]interface{}{}
	if cursor != "" {
		input["cursor"] = cursor
	}
	if err := c.RunGraphQL(ctx, sourcesQuery, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}

	page := &SourcePage{
		Sources:     make([]map[string]interface{}, 0, len(resp.Sources.Edges)),
		HasNextPage: resp.Sources.PageInfo.HasNextPage,
		HasPrevPage: resp.Sources.PageInfo.HasPreviousPage,
		EndCursor:   resp.Sources.PageInfo.EndCursor,
		StartCursor: resp.Sources.PageInfo.StartCursor,
	}
	for _, edge := range resp.Sources.Edges {
		page.Sources = append(page.Sources, edge.Node)
	}
	return page, nil
}
