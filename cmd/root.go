package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"panthermcp/internal/panther"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeBadCredentials indicates the instance rejected the API token.
	ExitCodeBadCredentials = 2
)

// rootCmd represents the base command for the panther-mcp application.
var rootCmd = &cobra.Command{
	Use:   "panther-mcp",
	Short: "MCP server for Panther security analytics",
	Long: `panther-mcp exposes your Panther instance to AI assistants over the
Model Context Protocol: alert triage, detection management, data lake
queries, metrics, and log source health as MCP tools, prompts, and
resources.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
	panther.SetVersion(v)
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "panther-mcp version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	var credentials *panther.CredentialsError
	if errors.As(err, &credentials) {
		return ExitCodeBadCredentials
	}
	return ExitCodeError
}
