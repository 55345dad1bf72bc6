package cli

import (
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/bootstrap"
	"github.com/RyanLiu6/setup/internal/runtime"
	"github.com/RyanLiu6/setup/internal/ui"
)

var (
	setupSkipPlatform   bool
	setupSkipComponents bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the development environment",
	Long: `Install platform prerequisites (Homebrew on macOS), run each component's
setup script and then install the AI tool configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		return runSetup(cmd, s, setupSkipPlatform, setupSkipComponents)
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipPlatform, "skip-platform", false, "Skip the platform prerequisites")
	setupCmd.Flags().BoolVar(&setupSkipComponents, "skip-components", false, "Skip the component setup scripts")
	rootCmd.AddCommand(setupCmd)
}

func newRunner(cmd *cobra.Command) *runtime.ExecRunner {
	return &runtime.ExecRunner{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Stdin:  cmd.InOrStdin(),
	}
}

// runSetup runs the platform, component and tool phases in that order.
func runSetup(cmd *cobra.Command, s *session, skipPlatform, skipComponents bool) error {
	ctx := cmd.Context()
	b := bootstrap.New(newRunner(cmd), s.logger, os.Environ())

	if !skipPlatform {
		fmt.Fprintln(s.out, ui.Banner("Platform"))
		osName, err := bootstrap.Detect(goruntime.GOOS)
		if err != nil {
			return err
		}
		if err := b.EnsurePrerequisites(ctx, osName); err != nil {
			return fmt.Errorf("platform prerequisites: %w", err)
		}
	}

	if !skipComponents {
		fmt.Fprintln(s.out, ui.Banner("Components"))
		ran, err := b.RunComponents(ctx, s.env.RepoRoot, bootstrap.Components)
		if err != nil {
			return err
		}
		s.logger.Info("components done", "ran", len(ran), "of", len(bootstrap.Components))
	}

	if err := s.loadConfig(); err != nil {
		return err
	}
	if _, err := installTools(s, nil); err != nil {
		return err
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.SuccessStyle.Render("Setup complete."))
	fmt.Fprintf(s.out, "Restart your shell or run: source %s\n", s.shellRC)
	return nil
}
