package memory

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/RyanLiu6/setup/internal/platform"
)

var (
	fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	discard  = log.New(io.Discard)
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func memoryDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "memory")
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

func TestGenerate_SingleFileOrdering(t *testing.T) {
	src := memoryDir(t, map[string]string{
		"zz.md":     "\n# Z\n\nlast\n\n",
		"base.md":   "# Base\n\nfirst\n",
		"notes.txt": "ignored",
	})
	configDir := t.TempDir()

	res, err := Generate(src, configDir, "rules.md", ModeSingleFile, fixedNow, discard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Done {
		t.Fatal("Done = false")
	}
	if diff := cmp.Diff([]string{"base.md", "zz.md"}, res.Written); diff != "" {
		t.Errorf("Written mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(configDir, "rules.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# Base\n\nfirst\n\n# Z\n\nlast\n"
	if string(data) != want {
		t.Errorf("rules.md = %q, want %q", data, want)
	}
}

func TestGenerate_SingleFileBackupAndIdempotence(t *testing.T) {
	src := memoryDir(t, map[string]string{"base.md": "# Base"})
	configDir := t.TempDir()
	target := filepath.Join(configDir, "rules.md")
	writeFile(t, target, "user rules")

	res, err := Generate(src, configDir, "rules.md", ModeSingleFile, fixedNow, discard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Backup != platform.BackupName(target, fixedNow) {
		t.Errorf("Backup = %q, want %q", res.Backup, platform.BackupName(target, fixedNow))
	}

	res, err = Generate(src, configDir, "rules.md", ModeSingleFile, fixedNow.Add(time.Hour), discard)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if !res.Unchanged || res.Backup != "" {
		t.Errorf("second run = %+v, want unchanged without backup", res)
	}

	entries, _ := os.ReadDir(configDir)
	if len(entries) != 2 {
		t.Errorf("config dir has %d entries, want target plus one backup", len(entries))
	}
}

func TestGenerate_Directory(t *testing.T) {
	src := memoryDir(t, map[string]string{"base.md": "# Base", "style.md": "# Style"})
	configDir := t.TempDir()
	dst := filepath.Join(configDir, "memories")
	if err := os.MkdirAll(dst, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(src, "base.md"), filepath.Join(dst, "base.md")); err != nil {
		t.Fatal(err)
	}

	res, err := Generate(src, configDir, "memories", ModeDirectory, fixedNow, discard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff([]string{"base.md", "style.md"}, res.Written); diff != "" {
		t.Errorf("Written mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"base.md", "style.md"} {
		path := filepath.Join(dst, name)
		if platform.IsSymlink(path) {
			t.Errorf("%s is a link, want a copy", name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := os.ReadFile(filepath.Join(src, name))
		if string(data) != string(want) {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}

	res, err = Generate(src, configDir, "memories", ModeDirectory, fixedNow, discard)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if !res.Unchanged {
		t.Errorf("second run = %+v, want unchanged", res)
	}
}

func TestGenerate_MissingSourceWritesNothing(t *testing.T) {
	configDir := t.TempDir()

	for _, mode := range []string{ModeSingleFile, ModeDirectory} {
		res, err := Generate(filepath.Join(t.TempDir(), "missing"), configDir, "out", mode, fixedNow, discard)
		if err != nil {
			t.Fatalf("Generate(%s): %v", mode, err)
		}
		if res.Done {
			t.Errorf("Done = true for missing source in %s mode", mode)
		}
	}

	entries, _ := os.ReadDir(configDir)
	if len(entries) != 0 {
		t.Errorf("config dir has %d entries, want none", len(entries))
	}
}

func TestGenerate_EmptySource(t *testing.T) {
	src := memoryDir(t, map[string]string{"README.txt": "x"})
	configDir := t.TempDir()

	res, err := Generate(src, configDir, "rules.md", ModeSingleFile, fixedNow, discard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Done || platform.Exists(filepath.Join(configDir, "rules.md")) {
		t.Error("empty source produced output")
	}
}

func TestGenerate_UnknownMode(t *testing.T) {
	src := memoryDir(t, map[string]string{"base.md": "# Base"})
	configDir := t.TempDir()

	res, err := Generate(src, configDir, "rules.md", "append", fixedNow, discard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Done || platform.Exists(filepath.Join(configDir, "rules.md")) {
		t.Error("unknown mode produced output")
	}
}

func TestLint(t *testing.T) {
	dir := memoryDir(t, map[string]string{
		"base.md":  "# Base\n\ncontent",
		"empty.md": "  \n",
		"plain.md": "no heading here\n##not a heading",
	})

	issues, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}

	got := map[string]string{}
	for _, i := range issues {
		got[filepath.Base(i.Path)] = i.Message
	}
	want := map[string]string{
		"empty.md": "empty memory file",
		"plain.md": "missing top-level heading",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lint mismatch (-want +got):\n%s", diff)
	}
}

func TestLintToolDocs(t *testing.T) {
	ai := t.TempDir()
	memDir := filepath.Join(ai, "memory")
	writeFile(t, filepath.Join(memDir, "base.md"), "# Base")
	writeFile(t, filepath.Join(memDir, "style.md"), "# Style")
	toolDir := filepath.Join(ai, "modules", "claude")
	writeFile(t, filepath.Join(toolDir, "CLAUDE.md"), "# Claude\n\n@../../memory/base.md\n@../../memory/gone.md\n")

	issues, err := LintToolDocs(toolDir, memDir, true)
	if err != nil {
		t.Fatalf("LintToolDocs: %v", err)
	}

	var msgs []string
	for _, i := range issues {
		msgs = append(msgs, i.Message)
	}
	want := []string{"broken reference @../../memory/gone.md", "does not reference memory/style.md"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("LintToolDocs mismatch (-want +got):\n%s", diff)
	}

	issues, err = LintToolDocs(toolDir, memDir, false)
	if err != nil {
		t.Fatalf("LintToolDocs: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("issues = %v, want only the broken reference", issues)
	}
}
