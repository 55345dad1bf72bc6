package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/RyanLiu6/setup/internal/manifest"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the declared AI tools",
	Long:  `List the tools declared in tools.json with their directories and rules.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		return printToolList(s.out, s.cfg, listOutput)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a declared tool for display.
type listEntry struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	ConfigDir string   `json:"config_dir" yaml:"config_dir"`
	ToolDir   string   `json:"tool_dir" yaml:"tool_dir"`
	Rules     []string `json:"rules" yaml:"rules"`
}

func listEntries(cfg *manifest.ToolsConfig) []listEntry {
	entries := make([]listEntry, 0, len(cfg.Tools))
	for _, t := range cfg.Tools {
		e := listEntry{ID: t.ID, Name: t.Name, ConfigDir: t.ConfigDir, ToolDir: t.ToolDir, Rules: []string{}}
		for _, r := range t.Rules() {
			e.Rules = append(e.Rules, r.Kind())
		}
		entries = append(entries, e)
	}
	return entries
}

func printToolList(w io.Writer, cfg *manifest.ToolsConfig, format string) error {
	entries := listEntries(cfg)

	switch format {
	case "json":
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	case "yaml":
		out, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		fmt.Fprint(w, string(out))
		return nil
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No tools declared.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONFIG DIR\tRULES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.ConfigDir, strings.Join(e.Rules, ","))
	}
	return tw.Flush()
}
