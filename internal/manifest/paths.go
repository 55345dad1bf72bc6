package manifest

import (
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the tool's config directory with "~" expanded.
func (t *Tool) ConfigPath(home string) string {
	return ExpandHome(t.ConfigDir, home)
}

// ToolPath returns the tool's source directory inside aiRoot.
func (t *Tool) ToolPath(aiRoot string) string {
	return filepath.Join(aiRoot, t.ToolDir)
}

// SkillDirs returns every skill source directory of a skills_symlink rule:
// the primary source inside aiRoot followed by the extra directories. Extra
// directories starting with "~" are relative to home, absolute ones are kept
// and the rest are relative to aiRoot.
func (r SkillsSymlinkRule) SkillDirs(aiRoot, home string) []string {
	dirs := []string{filepath.Join(aiRoot, r.Source)}
	for _, d := range r.ExtraDirs {
		switch {
		case strings.HasPrefix(d, "~"):
			dirs = append(dirs, ExpandHome(d, home))
		case filepath.IsAbs(d):
			dirs = append(dirs, d)
		default:
			dirs = append(dirs, filepath.Join(aiRoot, d))
		}
	}
	return dirs
}

// ManagedPaths returns every path the tool installs into its config
// directory: symlink targets, the skills directory and generated skills and
// memory. The config directory itself is not included.
func (t *Tool) ManagedPaths(home string) []string {
	configDir := t.ConfigPath(home)
	var paths []string
	for _, rule := range t.Rules() {
		switch r := rule.(type) {
		case SymlinkRule:
			paths = append(paths, filepath.Join(configDir, r.Target))
		case SkillsSymlinkRule:
			paths = append(paths, filepath.Join(configDir, r.Target))
		case SkillsGenerateRule:
			paths = append(paths, filepath.Join(configDir, r.Target))
		case MemoryGenerateRule:
			paths = append(paths, filepath.Join(configDir, r.Target))
		}
	}
	return paths
}

// ManagedPaths returns the managed paths of every tool in declaration order.
func (c *ToolsConfig) ManagedPaths(home string) []string {
	var paths []string
	for _, t := range c.Tools {
		paths = append(paths, t.ManagedPaths(home)...)
	}
	return paths
}
