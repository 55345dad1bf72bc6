//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/manifest"
)

// testEnv holds an isolated home directory and a repository checkout.
type testEnv struct {
	Env linker.Env
	Cfg *manifest.ToolsConfig
	Now time.Time
}

const toolsJSON = `{
  "requires": ">= 0.1.0",
  "tools": {
    "claude": {
      "name": "Claude Code",
      "config_dir": "~/.claude",
      "tool_dir": "claude",
      "settings_template": {"template": "settings.template.json", "target": "settings.json"},
      "symlinks": [
        {"source": "CLAUDE.md", "target": "CLAUDE.md"},
        {"source": "settings.json", "target": "settings.json"}
      ],
      "skills_symlink": {"source": "skills", "target": "skills"}
    },
    "gemini": {
      "name": "Gemini CLI",
      "config_dir": "~/.gemini",
      "tool_dir": "gemini",
      "symlinks": [{"source": "GEMINI.md", "target": "GEMINI.md"}],
      "skills_generate": {"source": "skills", "target": "commands", "format": "toml"},
      "shell_alias": {
        "alias": "alias gemini='gemini --yolo'",
        "comment": "# Gemini CLI: auto-approve tools"
      }
    },
    "windsurf": {
      "name": "Windsurf",
      "config_dir": "~/.codeium/windsurf",
      "tool_dir": "windsurf",
      "memory_generate": {"source": "memory", "target": "memories/global_rules.md", "mode": "single_file"}
    }
  }
}`

// setupTestEnv lays out a repository with an AI tree declaring three tools
// and an empty home holding only a shell startup file.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tmp := t.TempDir()
	env := linker.NewEnv(filepath.Join(tmp, "home"), filepath.Join(tmp, "repo"))
	ai := env.AIRoot

	writeFile(t, manifest.Path(ai), toolsJSON)
	writeFile(t, filepath.Join(ai, "claude", "CLAUDE.md"), "# Claude\n\n@../memory/base.md\n@../memory/style.md\n")
	writeFile(t, filepath.Join(ai, "claude", "settings.template.json"), `{"model": "default"}`+"\n")
	writeFile(t, filepath.Join(ai, "gemini", "GEMINI.md"), "# Gemini\n\n@../memory/base.md\n@../memory/style.md\n")
	if err := os.MkdirAll(filepath.Join(ai, "windsurf"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(ai, "skills", "review", "SKILL.md"),
		"---\ndescription: Review the staged change\n---\n\n# Review\n\nRead the diff.\n")
	writeFile(t, filepath.Join(ai, "skills", "commit", "SKILL.md"),
		"---\ndescription: Write a commit message\n---\n\n# Commit\n\nSummarize the change.\n")
	writeFile(t, filepath.Join(ai, "memory", "base.md"), "# Base\n")
	writeFile(t, filepath.Join(ai, "memory", "style.md"), "# Style\n")
	writeFile(t, env.ShellRC(), "export EDITOR=vim\n")

	cfg, err := manifest.Load(manifest.Path(ai))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &testEnv{
		Env: env,
		Cfg: cfg,
		Now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func (e *testEnv) linker(interactive bool, answer bool) *linker.Linker {
	return linker.New(e.Env,
		linker.WithClock(func() time.Time { return e.Now }),
		linker.WithInteractive(interactive),
		linker.WithConfirm(func(string) (bool, error) { return answer, nil }),
	)
}

func (e *testEnv) home(parts ...string) string {
	return filepath.Join(append([]string{e.Env.Home}, parts...)...)
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if anything, including a dangling link,
// occupies path.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertLinkTo fails unless path is a symlink pointing at target.
func assertLinkTo(t *testing.T, path, target string) {
	t.Helper()
	dest, err := os.Readlink(path)
	if err != nil {
		t.Errorf("expected %s to be a symlink: %v", path, err)
		return
	}
	if dest != target {
		t.Errorf("%s -> %s, want -> %s", path, dest, target)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
