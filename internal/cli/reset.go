package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/shellrc"
	"github.com/RyanLiu6/setup/internal/teardown"
	"github.com/RyanLiu6/setup/internal/ui"
)

var (
	resetYes  bool
	resetKeep bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Tear down the managed configuration and set it up again",
	Long: `Remove every managed configuration file and link from the home directory,
reset the global git settings and run setup again. A real shell startup
file is copied aside before it is removed.

With --keep, lines that other tools appended to the shell startup file below
the devsetup marker are carried over to the new file.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().BoolVar(&resetKeep, "keep", false, "Preserve tool-installed lines in the shell startup file")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, ui.Banner("Reset"))
	for _, p := range teardown.Paths(s.env.Home) {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
	for _, p := range s.cfg.ManagedPaths(s.env.Home) {
		fmt.Fprintf(s.out, "  %s\n", p)
	}

	if !resetYes {
		ok, err := s.prompt.Confirm("The paths above will be removed. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Aborted.")
			return nil
		}
	}

	rc := teardown.ShellRC(s.env.Home)
	var preserved string
	if resetKeep {
		preserved, err = shellrc.ExtractToolContent(rc)
		if err != nil {
			return err
		}
		if preserved != "" {
			s.logger.Info("preserving tool-installed shell lines", "path", rc)
		}
	}

	report, err := teardown.Teardown(cmd.Context(), teardown.Options{
		Home:   s.env.Home,
		Config: s.cfg,
		Runner: newRunner(cmd),
		Logger: s.logger,
		Now:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("teardown: %w", err)
	}
	s.logger.Info("teardown done", "removed", len(report.Removed), "git_reset", report.GitReset)
	if report.ShellBackup != "" {
		fmt.Fprintf(s.out, "Shell startup file saved to %s\n", report.ShellBackup)
	}

	if err := runSetup(cmd, s, false, false); err != nil {
		return err
	}

	if preserved != "" {
		restored, err := shellrc.RestoreToolContent(rc, preserved)
		if err != nil {
			return err
		}
		if !restored {
			s.logger.Warn("new shell startup file has no marker, tool-installed lines not restored", "path", rc)
			fmt.Fprintf(s.out, "Lines that were not restored:\n%s\n", preserved)
		}
	}
	return nil
}
