package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/manifest"
)

const toolsJSON = `{
  "tools": {
    "claude": {
      "name": "Claude Code",
      "config_dir": "~/.claude",
      "tool_dir": "modules/claude",
      "skills_symlink": {"source": "skills", "target": "skills"}
    },
    "gemini": {
      "name": "Gemini CLI",
      "config_dir": "~/.gemini",
      "tool_dir": "modules/gemini",
      "skills_generate": {"source": "skills", "target": "commands", "format": "toml"}
    },
    "windsurf": {
      "name": "Windsurf",
      "config_dir": "~/.codeium/windsurf",
      "tool_dir": "modules/windsurf",
      "memory_generate": {"source": "memory", "target": "memories/global_rules.md", "mode": "single_file"}
    }
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (linker.Env, *manifest.ToolsConfig) {
	t.Helper()
	tmp := t.TempDir()
	env := linker.NewEnv(filepath.Join(tmp, "home"), filepath.Join(tmp, "repo"))
	for _, tool := range []string{"claude", "gemini", "windsurf"} {
		if err := os.MkdirAll(filepath.Join(env.AIRoot, "modules", tool), 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(env.AIRoot, "skills", "review", "SKILL.md"), "---\ndescription: Review\n---\nRead the diff.\n")
	writeFile(t, filepath.Join(env.AIRoot, "memory", "base.md"), "# Base\n")

	cfg, err := manifest.Parse([]byte(toolsJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return env, cfg
}

func TestTargets(t *testing.T) {
	env, cfg := setup(t)

	targets := Targets(cfg.Tools, env.AIRoot)
	var ids []string
	for _, tg := range targets {
		ids = append(ids, tg.Tool.ID)
	}
	if diff := cmp.Diff([]string{"gemini", "windsurf"}, ids); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{filepath.Join(env.AIRoot, "skills")}, targets[0].Dirs); diff != "" {
		t.Errorf("gemini dirs mismatch (-want +got):\n%s", diff)
	}
}

func TestTargets_MissingSource(t *testing.T) {
	env, cfg := setup(t)
	if err := os.RemoveAll(filepath.Join(env.AIRoot, "memory")); err != nil {
		t.Fatal(err)
	}
	if got := Targets(cfg.Tools, env.AIRoot); len(got) != 1 || got[0].Tool.ID != "gemini" {
		t.Errorf("Targets = %v, want only gemini", got)
	}
}

func TestNew_NothingToWatch(t *testing.T) {
	if _, err := New(nil, nil, Config{}); !errors.Is(err, ErrNothingToWatch) {
		t.Errorf("err = %v, want ErrNothingToWatch", err)
	}
}

func TestIsIgnored(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/repo/ai/skills/review/.SKILL.md.swp", true},
		{"/repo/ai/skills/review/SKILL.md~", true},
		{"/repo/ai/memory/4913", true},
		{"/repo/ai/memory/.DS_Store", true},
		{"/repo/ai/memory/base.md", false},
		{"/repo/ai/skills/review/SKILL.md", false},
	}
	for _, tt := range tests {
		if got := isIgnored(tt.path); got != tt.want {
			t.Errorf("isIgnored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRun_RegeneratesOnChange(t *testing.T) {
	env, cfg := setup(t)
	l := linker.New(env)

	regenerated := make(chan string, 10)
	w, err := New(l, Targets(cfg.Tools, env.AIRoot), Config{
		Debounce: 50 * time.Millisecond,
		OnRegenerate: func(res *linker.Result, err error) {
			if err == nil {
				regenerated <- res.ID
			}
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	writeFile(t, filepath.Join(env.AIRoot, "skills", "commit.md"), "---\ndescription: Commit\n---\nWrite a message.\n")

	select {
	case id := <-regenerated:
		if id != "gemini" {
			t.Errorf("regenerated %q, want gemini", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for regeneration")
	}

	if _, err := os.Stat(filepath.Join(env.Home, ".gemini", "commands", "commit.toml")); err != nil {
		t.Errorf("new skill not generated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.Home, ".gemini", "commands", "review.toml")); err != nil {
		t.Errorf("existing skill not generated: %v", err)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
