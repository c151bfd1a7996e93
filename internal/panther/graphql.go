package panther

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"

	"panthermcp/pkg/logging"
)

// RunGraphQL executes a GraphQL document against the instance's public
// endpoint and decodes the response into out. A fresh client is built per
// call; the underlying HTTP client (and its TLS policy and timeout) is
// shared.
func (c *Client) RunGraphQL(ctx context.Context, document string, vars map[string]interface{}, out interface{}) error {
	endpoint, err := c.GraphQLEndpoint(ctx)
	if err != nil {
		return err
	}

	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(c.httpClient))
	gql.Log = func(s string) { logging.Debug("GraphQL", "%s", s) }

	req := graphql.NewRequest(document)
	for key, value := range vars {
		req.Var(key, value)
	}
	req.Header.Set("X-API-Key", c.cfg.APIToken)
	req.Header.Set("User-Agent", userAgent(c.cfg.DockerRuntime))

	if err := gql.Run(ctx, req, out); err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	return nil
}
