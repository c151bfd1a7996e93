package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"panthermcp/internal/panther"
	"panthermcp/internal/prompts"
	"panthermcp/internal/registry"
	"panthermcp/internal/resources"
	"panthermcp/internal/tools"
)

var capabilitiesOutput string

// newCapabilitiesCmd creates the command that prints the capability set the
// server would expose: every tool with its permission requirements, plus
// prompts and resources. It builds the registry without connecting to an
// instance, so it works offline.
func newCapabilitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "List the tools, prompts, and resources this server exposes",
		Args:  cobra.NoArgs,
		RunE:  runCapabilities,
	}
	cmd.Flags().StringVarP(&capabilitiesOutput, "output", "o", "table", "Output format: table or json")
	return cmd
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	client := panther.NewClient(&panther.Config{})

	reg := registry.New()
	tools.RegisterAll(reg, client)
	prompts.RegisterAll(reg)
	resources.RegisterAll(reg, client)

	switch capabilitiesOutput {
	case "table":
		return renderCapabilitiesTable(cmd, reg)
	case "json":
		return renderCapabilitiesJSON(cmd, reg)
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", capabilitiesOutput)
	}
}

func renderCapabilitiesTable(cmd *cobra.Command, reg *registry.Registry) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"TOOL", "PERMISSIONS", "READ-ONLY"})

	for _, def := range reg.Tools() {
		readOnly := ""
		if def.ReadOnly {
			readOnly = "yes"
		}
		t.AppendRow(table.Row{def.Tool.Name, formatPermissions(def.Permissions), readOnly})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "\nPrompts:   %s\n", strings.Join(reg.ListPromptNames(), ", "))
	fmt.Fprintf(cmd.OutOrStdout(), "Resources: %s\n", strings.Join(reg.ListResourceURIs(), ", "))
	return nil
}

func formatPermissions(spec map[string][]string) string {
	if len(spec) == 0 {
		return ""
	}
	var parts []string
	for _, mode := range []string{"all_of", "any_of"} {
		if perms, ok := spec[mode]; ok && len(perms) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", mode, strings.Join(perms, ", ")))
		}
	}
	return strings.Join(parts, "; ")
}

func renderCapabilitiesJSON(cmd *cobra.Command, reg *registry.Registry) error {
	type toolInfo struct {
		Name        string              `json:"name"`
		Description string              `json:"description,omitempty"`
		Permissions map[string][]string `json:"permissions,omitempty"`
		ReadOnly    bool                `json:"read_only,omitempty"`
	}

	defs := reg.Tools()
	payload := struct {
		Tools     []toolInfo `json:"tools"`
		Prompts   []string   `json:"prompts"`
		Resources []string   `json:"resources"`
	}{
		Tools:     make([]toolInfo, 0, len(defs)),
		Prompts:   reg.ListPromptNames(),
		Resources: reg.ListResourceURIs(),
	}
	for _, def := range defs {
		payload.Tools = append(payload.Tools, toolInfo{
			Name:        def.Tool.Name,
			Description: def.Tool.Description,
			Permissions: def.Permissions,
			ReadOnly:    def.ReadOnly,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func init() {
	rootCmd.AddCommand(newCapabilitiesCmd())
}
