package teardown

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/platform"
)

// backupPattern matches the names produced by platform.BackupName.
const backupPattern = "*" + platform.BackupInfix + "*"

// ShellBackups returns the fixed backup paths that component setup scripts
// leave under home.
func ShellBackups(home string) []string {
	return []string{
		filepath.Join(home, ".zprofile.backup"),
		filepath.Join(home, ".gitignore_global.backup"),
		filepath.Join(home, ".config", "starship.toml.backup"),
		filepath.Join(home, ".config", "ghostty.backup"),
		filepath.Join(home, ".config", "direnv", "direnvrc.backup"),
		filepath.Join(home, "Library", "Preferences", "com.knollsoft.Rectangle.plist.backup"),
	}
}

// FindBackups returns every existing backup under home: the fixed shell
// backups, startup file copies and the timestamped backups inside each tool
// config directory and its real subdirectories. cfg may be nil.
func FindBackups(cfg *manifest.ToolsConfig, home string) ([]string, error) {
	var found []string
	for _, p := range ShellBackups(home) {
		if platform.Exists(p) {
			found = append(found, p)
		}
	}

	matches, err := filepath.Glob(ShellRC(home) + platform.BackupInfix + "*")
	if err != nil {
		return nil, fmt.Errorf("searching shell backups: %w", err)
	}
	found = append(found, matches...)

	if cfg != nil {
		seen := make(map[string]bool)
		for _, t := range cfg.Tools {
			dir := t.ConfigPath(home)
			if seen[dir] {
				continue
			}
			seen[dir] = true
			backups, err := ToolBackups(dir)
			if err != nil {
				return nil, err
			}
			found = append(found, backups...)
		}
	}
	return found, nil
}

// ToolBackups returns the timestamped backups inside configDir and inside
// each of its subdirectories that is not a symlink. A missing configDir has
// none.
func ToolBackups(configDir string) ([]string, error) {
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	found, err := filepath.Glob(filepath.Join(configDir, backupPattern))
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", configDir, err)
	}

	entries, err := os.ReadDir(configDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() || e.Type()&os.ModeSymlink != 0 {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(configDir, e.Name(), backupPattern))
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", e.Name(), err)
		}
		found = append(found, matches...)
	}
	sort.Strings(found)
	return found, nil
}

// Cleanup deletes every backup FindBackups reports and returns the removed
// paths. A nil logger discards output.
func Cleanup(cfg *manifest.ToolsConfig, home string, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	found, err := FindBackups(cfg, home)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, p := range found {
		kind, err := platform.RemovePath(p)
		if err != nil {
			return removed, err
		}
		if kind == platform.RemovedNothing {
			continue
		}
		logger.Info("removed backup", "path", p, "kind", kind)
		removed = append(removed, p)
	}
	return removed, nil
}
