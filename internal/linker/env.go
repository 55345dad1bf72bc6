package linker

import (
	"path/filepath"

	"github.com/RyanLiu6/setup/internal/branding"
)

// Env holds the filesystem roots the linker operates on. The linker never
// reads them from the process environment itself.
type Env struct {
	Home     string // user home directory; "~" in config paths expands to it
	RepoRoot string // repository root
	AIRoot   string // AI source tree; rule sources are relative to it
}

// NewEnv returns an Env for repoRoot with the AI tree at its default
// location inside the repository.
func NewEnv(home, repoRoot string) Env {
	return Env{
		Home:     home,
		RepoRoot: repoRoot,
		AIRoot:   filepath.Join(repoRoot, branding.AIDir()),
	}
}

// ShellRC returns the default shell startup file path under Home.
func (e Env) ShellRC() string {
	return filepath.Join(e.Home, branding.ShellRC())
}
