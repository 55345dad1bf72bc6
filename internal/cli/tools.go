package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/ui"
)

var toolsList bool

var toolsCmd = &cobra.Command{
	Use:   "tools [ids...]",
	Short: "Install AI tool configuration",
	Long: `Link and generate the configuration of the AI tools declared in tools.json.
With no ids every tool is installed, in declaration order. Existing files are
backed up before they are replaced; running the command again changes nothing.`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsList, "list", false, "List the declared tools and exit")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	if toolsList {
		return printToolList(s.out, s.cfg, "text")
	}
	_, err = installTools(s, args)
	return err
}

// installTools installs the selected tools, printing a section per tool and
// a closing summary. Partial results are not an error.
func installTools(s *session, ids []string) ([]*linker.Result, error) {
	l := s.newLinker()
	tools, err := l.Select(s.cfg, ids)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, ui.Banner("AI Tools Setup"))
	fmt.Fprintln(s.out, ui.SubtitleStyle.Render("Source: "+s.env.AIRoot))

	results := make([]*linker.Result, 0, len(tools))
	for _, t := range tools {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, ui.Section(t.Name))
		res, err := l.InstallTool(t)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("installing %s: %w", t.ID, err)
		}
	}

	printInstallSummary(s, results)
	return results, nil
}

func printInstallSummary(s *session, results []*linker.Result) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.Banner("Summary"))
	for _, r := range results {
		fmt.Fprintf(s.out, "  %-20s %s\n", r.Name, ui.Summary(r.OK()))
		for _, w := range r.Warnings {
			fmt.Fprintf(s.out, "    %s\n", ui.SubtitleStyle.Render(w))
		}
	}

	var backups []string
	for _, r := range results {
		backups = append(backups, r.BackedUp...)
	}
	if len(backups) > 0 {
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "Backed up %d existing path(s):\n  %s\n", len(backups), strings.Join(backups, "\n  "))
	}
}
