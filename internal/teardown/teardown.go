package teardown

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/branding"
	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/platform"
	"github.com/RyanLiu6/setup/internal/runtime"
)

// Options configures Teardown.
type Options struct {
	Home string
	// Config supplies the AI tool paths; nil skips them.
	Config *manifest.ToolsConfig
	// Runner resets the global git config; nil leaves it alone.
	Runner runtime.Runner
	Logger *log.Logger
	Now    time.Time
}

// Removal records one deleted path.
type Removal struct {
	Path string
	Kind platform.RemoveKind
}

// Report lists what Teardown did.
type Report struct {
	Removed []Removal
	// ShellBackup is the copy taken of a real startup file before removal.
	ShellBackup string
	GitReset    bool
}

// gitSettings are unset from the global git config.
var gitSettings = []string{"core.excludesfile", "include.path"}

// Paths returns the shell, terminal and window-manager configuration paths
// under home in removal order.
func Paths(home string) []string {
	return []string{
		filepath.Join(home, ".zprofile"),
		ShellRC(home),
		filepath.Join(home, ".config", "direnv", "direnvrc"),
		gitIgnore(home),
		filepath.Join(home, ".config", "ghostty"),
		filepath.Join(home, ".config", "starship.toml"),
		filepath.Join(home, "Library", "Preferences", "com.knollsoft.Rectangle.plist"),
	}
}

// ShellRC returns the shell startup file under home.
func ShellRC(home string) string {
	return filepath.Join(home, branding.ShellRC())
}

func gitIgnore(home string) string {
	return filepath.Join(home, ".gitignore_global")
}

// Teardown removes every managed configuration under opts.Home. A real shell
// startup file is copied aside before it is removed. Symlinks are unlinked
// without touching their targets and directories are removed recursively.
func Teardown(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	report := &Report{}

	remove := func(path string) error {
		kind, err := platform.RemovePath(path)
		if err != nil {
			return err
		}
		if kind != platform.RemovedNothing {
			logger.Info("removed", "path", path, "kind", kind)
			report.Removed = append(report.Removed, Removal{Path: path, Kind: kind})
		}
		return nil
	}

	for _, p := range Paths(opts.Home) {
		if p == ShellRC(opts.Home) {
			backup, err := backupShellRC(p, opts.Now)
			if err != nil {
				return report, err
			}
			if backup != "" {
				logger.Info("backed up", "path", p, "backup", backup)
				report.ShellBackup = backup
			}
		}
		if err := remove(p); err != nil {
			return report, err
		}
		// The global git settings point at the ignore file.
		if p == gitIgnore(opts.Home) && opts.Runner != nil {
			report.GitReset = resetGitConfig(ctx, opts.Runner, logger)
		}
	}

	if opts.Config != nil {
		for _, p := range opts.Config.ManagedPaths(opts.Home) {
			if err := remove(p); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

// backupShellRC copies a real startup file aside. Links are not copied.
func backupShellRC(path string, now time.Time) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}
	backup := platform.BackupName(path, now)
	if err := platform.CopyFile(path, backup); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return backup, nil
}

// resetGitConfig unsets the managed global git settings. Failures are logged
// and ignored; git exits non-zero when a key is not set.
func resetGitConfig(ctx context.Context, r runtime.Runner, logger *log.Logger) bool {
	git, err := r.LookPath("git")
	if err != nil {
		logger.Warn("git not found, leaving global config alone")
		return false
	}
	logger.Info("resetting git global config")
	for _, key := range gitSettings {
		cmd := runtime.Command{Name: git, Args: []string{"config", "--global", "--unset", key}}
		out, err := r.Run(ctx, cmd)
		switch {
		case err != nil:
			logger.Warn("git config failed", "key", key, "err", err)
		case !out.Success():
			logger.Debug("git setting not set", "key", key, "status", out.ExitCode)
		}
	}
	return true
}
