package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.yaml.in/yaml/v3"

	"github.com/RyanLiu6/setup/internal/manifest"
)

const listToolsJSON = `{
  "tools": {
    "claude": {
      "name": "Claude Code",
      "config_dir": "~/.claude",
      "tool_dir": "claude",
      "symlinks": [{"source": "CLAUDE.md", "target": "CLAUDE.md"}],
      "skills_symlink": {"source": "skills", "target": "skills"}
    },
    "gemini": {
      "name": "Gemini CLI",
      "config_dir": "~/.gemini",
      "tool_dir": "gemini",
      "skills_generate": {"source": "skills", "target": "commands", "format": "toml"},
      "shell_alias": {"alias": "alias gem='gemini'", "comment": "Gemini"}
    }
  }
}`

func parseListConfig(t *testing.T) *manifest.ToolsConfig {
	t.Helper()
	cfg, err := manifest.Parse([]byte(listToolsJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg
}

func TestListEntries(t *testing.T) {
	want := []listEntry{
		{ID: "claude", Name: "Claude Code", ConfigDir: "~/.claude", ToolDir: "claude", Rules: []string{"symlinks", "skills_symlink"}},
		{ID: "gemini", Name: "Gemini CLI", ConfigDir: "~/.gemini", ToolDir: "gemini", Rules: []string{"skills_generate", "shell_alias"}},
	}
	if diff := cmp.Diff(want, listEntries(parseListConfig(t))); diff != "" {
		t.Errorf("listEntries() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintToolList_Formats(t *testing.T) {
	cfg := parseListConfig(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printToolList(&buf, cfg, "text"); err != nil {
			t.Fatalf("printToolList() error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want header plus 2:\n%s", len(lines), buf.String())
		}
		if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "RULES") {
			t.Errorf("header = %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "claude") || !strings.Contains(lines[1], "symlinks,skills_symlink") {
			t.Errorf("first row = %q", lines[1])
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printToolList(&buf, cfg, "json"); err != nil {
			t.Fatalf("printToolList() error = %v", err)
		}
		var got []listEntry
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}
		if diff := cmp.Diff(listEntries(cfg), got); diff != "" {
			t.Errorf("JSON entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printToolList(&buf, cfg, "yaml"); err != nil {
			t.Fatalf("printToolList() error = %v", err)
		}
		var got []listEntry
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
		}
		if len(got) != 2 || got[1].ID != "gemini" {
			t.Errorf("YAML entries = %+v", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := printToolList(&bytes.Buffer{}, cfg, "xml"); err == nil {
			t.Error("printToolList(xml) error = nil, want error")
		}
	})
}

func TestListCommand(t *testing.T) {
	repo := t.TempDir()
	aiDir := filepath.Join(repo, "ai")
	if err := os.MkdirAll(aiDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(aiDir, manifest.ConfigFile), []byte(listToolsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"list", "--root", repo, "--home", t.TempDir(), "-o", "json"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("list error = %v", err)
	}
	var got []listEntry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 2 || got[0].ID != "claude" {
		t.Errorf("list entries = %+v", got)
	}
}
