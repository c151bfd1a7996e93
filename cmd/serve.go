package cmd

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"panthermcp/internal/panther"
	"panthermcp/internal/prompts"
	"panthermcp/internal/registry"
	"panthermcp/internal/resources"
	"panthermcp/internal/tools"
	"panthermcp/pkg/logging"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	serveLogLevel  string
	serveLogFile   string
	serveConfig    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts the MCP server and exposes the Panther capability set to
connected clients.

Transports:
  stdio            Speak MCP over stdin/stdout (default; logs go to stderr)
  sse              HTTP server with Server-Sent Events
  streamable-http  HTTP server with the streamable HTTP transport

Connection settings come from the environment (PANTHER_API_TOKEN,
PANTHER_INSTANCE_URL, and optional overrides), layered over an optional
YAML config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logOutput := os.Stderr
	if serveLogFile != "" {
		f, err := os.OpenFile(serveLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOutput = f
	}
	logging.Init(logging.ParseLevel(serveLogLevel), logOutput)

	cfg, err := panther.LoadConfig(serveConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := panther.NewClient(cfg)

	reg := registry.New()
	tools.RegisterAll(reg, client)
	prompts.RegisterAll(reg)
	resources.RegisterAll(reg, client)

	mcpServer := server.NewMCPServer(
		"panther-mcp",
		GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)
	reg.Flush(mcpServer)

	switch serveTransport {
	case "stdio":
		logging.Info("Serve", "Starting MCP server on stdio")
		return server.ServeStdio(mcpServer)
	case "sse":
		addr := fmt.Sprintf("%s:%d", serveHost, servePort)
		logging.Info("Serve", "Starting MCP server with SSE transport on %s", addr)
		sse := server.NewSSEServer(mcpServer,
			server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		)
		return sse.Start(addr)
	case "streamable-http":
		addr := fmt.Sprintf("%s:%d", serveHost, servePort)
		logging.Info("Serve", "Starting MCP server with streamable HTTP transport on %s", addr)
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unknown transport %q (expected stdio, sse, or streamable-http)", serveTransport)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "Transport to serve on: stdio, sse, or streamable-http")
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind HTTP transports to")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to bind HTTP transports to")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Minimum log level: debug, info, warn, or error")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Write logs to this file instead of stderr")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to an optional YAML config file")
}
