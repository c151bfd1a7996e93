// Package logging provides a structured logging system for panther-mcp with
// unified log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior across all subsystems.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Structured Logging
//
// All log entries include a timestamp, log level, subsystem identifier, the
// message content with optional formatting, and optional error information.
//
// # Usage
//
//	import "panthermcp/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "Server starting up")
//	logging.Debug("Client", "Resolved REST base %s", base)
//	logging.Warn("Registry", "Duplicate tool name %q", name)
//	logging.Error("Client", err, "Failed to resolve instance configuration")
//
// Output always goes to the configured writer (stderr by default) so that the
// stdio MCP transport on stdout stays clean.
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering:
//
//   - **Bootstrap**: Application initialization and startup
//   - **Registry**: Capability registration and flush
//   - **Client**: GraphQL and REST API access
//   - **DataLake**: Asynchronous data lake query protocol
//   - **Tools**: Tool handler invocations
//
// The logging system is fully thread-safe and filters disabled levels at the
// handler, so there is no allocation for suppressed messages.
package logging
