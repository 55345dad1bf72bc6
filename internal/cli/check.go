package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/doctor"
	"github.com/RyanLiu6/setup/internal/ui"
)

// errCheckFailed is returned when lint finds problems so the process exits
// non-zero after the issues are printed.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint the AI source tree",
	Long: `Validate tools.json against its schema and check every source it
references: tool directories, settings templates, skills, memory documents
and the references between them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}

		issues, err := doctor.New(s.env, s.shellRC).Lint(s.cfg)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Fprintf(s.out, "%s %d tool(s) checked, no issues\n", ui.Tag(ui.StatusOK), len(s.cfg.Tools))
			return nil
		}
		for _, i := range issues {
			fmt.Fprintf(s.out, "%s %s\n", ui.Tag(ui.StatusFail), i)
		}
		return fmt.Errorf("%w: %d issue(s)", errCheckFailed, len(issues))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
