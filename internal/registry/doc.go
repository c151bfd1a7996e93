// Package registry implements the process-wide capability registry: a table
// of named tools, prompts, and resources that capability packages register
// into at startup and that is then flushed into the MCP host framework.
//
// The registry is an explicit object constructed once in cmd/serve.go and
// passed to every capability-defining package, rather than a set of package
// globals. This keeps registration visible at the call site and lets tests
// build fresh registries.
//
// Registration semantics:
//
//   - Tools and prompts are deduplicated by handler identity: registering the
//     same handler function twice is a no-op. Two distinct handlers that share
//     a display name are both retained (a warning is logged naming the
//     collision) and both are flushed.
//   - Resources are keyed by URI; the last registration for a URI wins.
//
// Flush order is deterministic: tools lexicographically by name, prompts and
// resources in registration order. Flush is safe to call repeatedly.
package registry
