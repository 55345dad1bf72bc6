package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/runtime"
)

// OS identifies a supported operating system.
type OS string

// Supported operating systems.
const (
	MacOS OS = "macos"
	Linux OS = "linux"
)

// HomebrewInstallURL is the official non-interactive install script.
const HomebrewInstallURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// HomebrewPrefixes are searched in order after Homebrew is installed.
var HomebrewPrefixes = []string{"/opt/homebrew", "/usr/local"}

// Components are the setup scripts run by setup, in order. Each lives at
// <repo>/<component>/setup.
var Components = []string{"terminal", "direnv", "git", "lazygit", "rectangle", "shell"}

// ScriptName is the file name of a component setup script.
const ScriptName = "setup"

var (
	// ErrUnsupportedOS is returned by Detect for anything but macOS and Linux.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrSudoRequired is returned on Linux when sudo is not installed.
	ErrSudoRequired = errors.New("sudo is required for package installation on Linux")
	// ErrBrewNotFound is returned when Homebrew installed but no binary appeared.
	ErrBrewNotFound = errors.New("homebrew installed but binary not found")
)

// Detect maps a GOOS value to a supported OS.
func Detect(goos string) (OS, error) {
	switch goos {
	case "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// Bootstrapper runs the platform steps through a Runner. It keeps its own
// copy of the environment so PATH changes reach later component scripts.
type Bootstrapper struct {
	runner runtime.Runner
	logger *log.Logger
	env    []string
	exists func(path string) bool
}

// New returns a Bootstrapper whose children inherit env. A nil logger
// discards output.
func New(runner runtime.Runner, logger *log.Logger, env []string) *Bootstrapper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bootstrapper{
		runner: runner,
		logger: logger,
		env:    slices.Clone(env),
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Env returns the environment passed to child processes.
func (b *Bootstrapper) Env() []string {
	return slices.Clone(b.env)
}

// EnsurePrerequisites installs Homebrew on macOS when it is missing and
// checks for sudo on Linux.
func (b *Bootstrapper) EnsurePrerequisites(ctx context.Context, osName OS) error {
	b.logger.Info("detected OS", "os", osName)

	switch osName {
	case MacOS:
		if _, err := b.runner.LookPath("brew"); err == nil {
			b.logger.Info("homebrew already installed")
			return nil
		}
		return b.installHomebrew(ctx)
	case Linux:
		if _, err := b.runner.LookPath("sudo"); err != nil {
			return ErrSudoRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOS, osName)
	}
}

func (b *Bootstrapper) installHomebrew(ctx context.Context) error {
	b.logger.Info("installing homebrew")
	cmd := runtime.Command{
		Name: "/bin/bash",
		Args: []string{"-c", fmt.Sprintf(`script="$(curl -fsSL %s)" && /bin/bash -c "$script"`, HomebrewInstallURL)},
		Env:  runtime.SetEnv(b.Env(), "NONINTERACTIVE", "1"),
	}
	if _, err := runtime.Check(ctx, b.runner, cmd); err != nil {
		return fmt.Errorf("installing homebrew: %w", err)
	}

	prefix := ""
	for _, p := range HomebrewPrefixes {
		if b.exists(filepath.Join(p, "bin", "brew")) {
			prefix = p
			break
		}
	}
	if prefix == "" {
		return ErrBrewNotFound
	}

	path := strings.Join([]string{
		filepath.Join(prefix, "bin"),
		filepath.Join(prefix, "sbin"),
		runtime.GetEnv(b.env, "PATH"),
	}, string(os.PathListSeparator))
	b.env = runtime.SetEnv(b.env, "PATH", path)
	b.logger.Debug("added homebrew to PATH", "prefix", prefix)
	return nil
}

// RunComponents runs <repo>/<name>/setup for each name with REPO_DIR set.
// Missing scripts are skipped with a warning; a failing script stops the
// run. It returns the components that ran.
func (b *Bootstrapper) RunComponents(ctx context.Context, repo string, names []string) ([]string, error) {
	var ran []string
	for _, name := range names {
		script := filepath.Join(repo, name, ScriptName)
		if !b.exists(script) {
			b.logger.Warn("component setup script not found, skipping", "path", script)
			continue
		}

		b.logger.Info("running component", "component", name)
		cmd := runtime.Command{
			Name: script,
			Dir:  repo,
			Env:  runtime.SetEnv(b.Env(), "REPO_DIR", repo),
		}
		if _, err := runtime.Check(ctx, b.runner, cmd); err != nil {
			return ran, fmt.Errorf("component %s: %w", name, err)
		}
		ran = append(ran, name)
	}
	return ran, nil
}
