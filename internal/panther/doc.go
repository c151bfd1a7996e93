// Package panther implements the remote access layer for a Panther instance:
// endpoint resolution from the console URL, the GraphQL session factory, the
// scoped REST session, and the async data lake query protocol.
//
// Endpoint resolution order, for both APIs:
//
//  1. An explicit override from configuration.
//  2. The deployment config embedded in the console HTML (the
//     __PANTHER_CONFIG__ script tag), fetched at most once per process.
//  3. For non-HTML instance URLs, a base derived from the URL itself.
//
// The GraphQL endpoint, when not overridden, is always <rest base>/public/graphql.
package panther
