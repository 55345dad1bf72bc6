package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/config"
	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/ui"
)

// session bundles what most commands need: the resolved directories, the
// loaded tool configuration and a logger.
type session struct {
	env     linker.Env
	shellRC string
	cfg     *manifest.ToolsConfig
	logger  *log.Logger
	out     io.Writer
	prompt  *ui.Prompter
}

// newSession resolves the home and repository directories. When loadConfig
// is set, tools.json is loaded, validated and checked against the running
// version.
func newSession(cmd *cobra.Command, loadConfig bool) (*session, error) {
	home, err := config.Home()
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	root, err := config.ResolveRoot(wd)
	if err != nil {
		return nil, err
	}

	env := linker.NewEnv(home, root)
	s := &session{
		env:     env,
		shellRC: env.ShellRC(),
		logger:  ui.NewLogger(cmd.ErrOrStderr(), config.GetBool(config.KeyVerbose)),
		out:     cmd.OutOrStdout(),
	}
	s.prompt = ui.NewPrompter(cmd.InOrStdin(), s.out)
	if rc := config.Get(config.KeyShellRC); rc != "" {
		s.shellRC = manifest.ExpandHome(rc, home)
	}

	if loadConfig {
		if err := s.loadConfig(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadConfig reads and validates tools.json and checks its requires
// constraint against the running version.
func (s *session) loadConfig() error {
	cfg, err := manifest.Load(manifest.Path(s.env.AIRoot))
	if err != nil {
		return err
	}
	if err := cfg.CheckRequires(buildVersion); err != nil {
		return err
	}
	for _, i := range cfg.Advisories {
		s.logger.Warn("tools.json", "path", i.Path, "issue", i.Message)
	}
	s.cfg = cfg
	return nil
}

// newLinker returns a Linker that prompts through the session's prompter
// when stdin is a terminal.
func (s *session) newLinker() *linker.Linker {
	return linker.New(s.env,
		linker.WithLogger(s.logger),
		linker.WithShellRC(s.shellRC),
		linker.WithInteractive(ui.IsInteractive()),
		linker.WithConfirm(s.prompt.Confirm),
	)
}
