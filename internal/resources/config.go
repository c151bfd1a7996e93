// Package resources defines the MCP resources exposed by the server.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"panthermcp/internal/panther"
	"panthermcp/internal/registry"
)

// ConfigURI is the address of the server configuration resource.
const ConfigURI = "config://panther"

// RegisterAll registers every resource with the registry. The config
// resource reads back out of the same registry, so registration order
// against tools and prompts does not matter: the listing is computed at
// read time.
func RegisterAll(reg *registry.Registry, client *panther.Client) {
	reg.RegisterResource(registry.ResourceDef{
		Resource: mcp.NewResource(ConfigURI, "Panther configuration"),
		Handler:  configResource(reg, client),
	})
}

func configResource(reg *registry.Registry, client *panther.Client) func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		gqlURL, err := client.GraphQLEndpoint(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve GraphQL endpoint: %w", err)
		}
		restURL, err := client.RESTBase(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve REST base: %w", err)
		}

		payload := map[string]interface{}{
			"gql_api_url":         gqlURL,
			"rest_api_url":        restURL,
			"available_tools":     reg.ListToolNames(),
			"available_resources": reg.ListResourceURIs(),
			"available_prompts":   reg.ListPromptNames(),
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ConfigURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
