package panther

import "context"

// SchemaFilters narrows a schema listing. Nil pointers mean "no filter".
type SchemaFilters struct {
	Contains   string
	IsArchived *bool
	IsInUse    *bool
	IsManaged  *bool
}

// ListSchemas returns the log type schemas matching the filters. The API does
// not paginate this listing.
func (c *Client) ListSchemas(ctx context.Context, filters SchemaFilters) ([]map[string]interface{}, error) {
	input := map[string]interface{}{}
	if filters.Contains != "" {
		input["contains"] = filters.Contains
	}
	if filters.IsArchived != nil {
		input["isArchived"] = *filters.IsArchived
	}
	if filters.IsInUse != nil {
		input["isInUse"] = *filters.IsInUse
	}
	if filters.IsManaged != nil {
		input["isManaged"] = *filters.IsManaged
	}

	return c.schemaEdges(ctx, listSchemasQuery, map[string]interface{}{"input": input})
}

// SchemaDetails returns full specifications for schemas whose name matches
// the given name.
func (c *Client) SchemaDetails(ctx context.Context, name string) ([]map[string]interface{}, error) {
	return c.schemaEdges(ctx, schemaDetailsQuery, map[string]interface{}{"name": name})
}

func (c *Client) schemaEdges(ctx context.Context, document string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	var resp struct {
		Schemas struct {
			Edges []struct {
				Node map[string]interface{} `json:"node"`
			} `json:"edges"`
		} `json:"schemas"`
	}
	if err := c.RunGraphQL(ctx, document, vars, &resp); err != nil {
		return nil, err
	}

	schemas := make([]map[string]interface{}, 0, len(resp.Schemas.Edges))
	for _, edge := range resp.Schemas.Edges {
		schemas = append(schemas, edge.Node)
	}
	return schemas, nil
}
