package panther

import "fmt"

// serverVersion is stamped by cmd.SetVersion at startup so the User-Agent
// reflects the released build.
var serverVersion = "dev"

// SetVersion records the server version used in outgoing User-Agent headers.
func SetVersion(version string) {
	if version != "" {
		serverVersion = version
	}
}

// userAgent builds the User-Agent for all outgoing API requests. The Docker
// marker lets the backend distinguish container deployments.
func userAgent(docker bool) string {
	runtime := "Go"
	if docker {
		runtime = "Go; Docker"
	}
	return fmt.Sprintf("panther-mcp/%s (%s)", serverVersion, runtime)
}
