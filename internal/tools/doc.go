// Package tools defines the MCP tools exposed by the server. Each file
// covers one API area (alerts, rules, data lake, metrics, ...) and registers
// its tools into the capability registry; RegisterAll wires the whole set.
//
// Every handler returns a JSON text envelope with a success flag. Expected
// failures (validation errors, not-found, remote job failures, transport
// errors) become {"success": false, "message": ...} rather than protocol
// errors, so the calling agent can react to them.
package tools
