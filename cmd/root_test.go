package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"panthermcp/internal/panther"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	originalVersion := rootCmd.Version
	defer func() { SetVersion(originalVersion) }()

	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
	if GetVersion() != testVersion {
		t.Errorf("Expected GetVersion to return %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "panther-mcp" {
		t.Errorf("Expected Use to be 'panther-mcp', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Same template as Execute() installs on the root command.
	testCmd.SetVersionTemplate(`{{printf "panther-mcp version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})

	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "panther-mcp version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	expectedCommands := []string{"version", "serve", "capabilities"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	if code := getExitCode(errors.New("boom")); code != ExitCodeError {
		t.Errorf("Expected exit code %d for generic error, got %d", ExitCodeError, code)
	}

	credErr := &panther.CredentialsError{Body: "denied"}
	if code := getExitCode(credErr); code != ExitCodeBadCredentials {
		t.Errorf("Expected exit code %d for credentials error, got %d", ExitCodeBadCredentials, code)
	}

	wrapped := errors.Join(errors.New("context"), credErr)
	if code := getExitCode(wrapped); code != ExitCodeBadCredentials {
		t.Errorf("Expected exit code %d for wrapped credentials error, got %d", ExitCodeBadCredentials, code)
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer

	// Use a copy to avoid mutating the global command's output streams.
	testRootCmd := &cobra.Command{
		Use:          rootCmd.Use,
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})

	err := testRootCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "panther-mcp") {
		t.Errorf("Help output should contain 'panther-mcp'. Got: %q", output)
	}

	if !strings.Contains(output, "Model Context Protocol") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}
