package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/branding"
	"github.com/RyanLiu6/setup/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagRoot    string
	flagHome    string
	flagShellRC string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs a personal development environment from this repository:
platform prerequisites, component setup scripts and the configuration of
AI coding tools declared in ` + branding.AIDir() + `/tools.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagRoot, "root", "", "repository root (default: nearest directory holding "+branding.AIDir()+"/tools.json)")
	flags.StringVar(&flagHome, "home", "", "home directory to install into")
	flags.StringVar(&flagShellRC, "shell-rc", "", "shell startup file for aliases (default: ~/"+branding.ShellRC()+")")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "show debug output")

	if err := config.BindFlags(flags); err != nil {
		panic(err)
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}
