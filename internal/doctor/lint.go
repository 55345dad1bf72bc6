package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanLiu6/setup/internal/convert"
	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/memory"
	"github.com/RyanLiu6/setup/internal/skills"
)

// MemoryDir is the shared memory directory inside the AI root that tool
// documents are expected to reference.
const MemoryDir = "memory"

// Issue is a problem found in the source tree.
type Issue struct {
	Tool    string // empty for problems not tied to one tool
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Tool == "" {
		return i.Path + ": " + i.Message
	}
	return i.Tool + ": " + i.Path + ": " + i.Message
}

// Lint checks the source tree behind cfg: every tool directory, symlink
// source and generate source must exist, every skill must pass skill lint and
// convert cleanly, and every memory document must pass memory lint. Tool
// documents must resolve their @references; tools without generated memory
// must also reference every shared memory document. Schema issues that Load
// tolerated in tools.json are reported first.
func (d *Doctor) Lint(cfg *manifest.ToolsConfig) ([]Issue, error) {
	var issues []Issue
	add := func(tool, path, format string, args ...any) {
		issues = append(issues, Issue{Tool: tool, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	configPath := manifest.Path(d.env.AIRoot)
	result, err := manifest.ValidateFile(configPath)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
	case err != nil:
		return issues, err
	default:
		for _, i := range result.Issues {
			add("", configPath, "schema: %s at %s", i.Message, i.Path)
		}
	}

	skillDirs := make(map[string]bool)
	var skillOrder []string
	tomlDirs := make(map[string]bool)
	memDirs := make(map[string]bool)
	var memOrder []string
	shared := filepath.Join(d.env.AIRoot, MemoryDir)

	for _, t := range cfg.Tools {
		toolDir := t.ToolPath(d.env.AIRoot)
		if !isDir(toolDir) {
			add(t.ID, toolDir, "tool_dir does not exist")
			continue
		}

		templated := make(map[string]bool)
		generatesMemory := false
		for _, rule := range t.Rules() {
			switch r := rule.(type) {
			case manifest.SettingsTemplateRule:
				if !isRegular(filepath.Join(toolDir, r.Template)) {
					add(t.ID, filepath.Join(toolDir, r.Template), "settings template does not exist")
				} else {
					templated[r.Target] = true
				}
			case manifest.SymlinkRule:
				source := filepath.Join(toolDir, r.Source)
				if _, err := os.Stat(source); err != nil && !templated[r.Source] {
					add(t.ID, source, "symlink source does not exist")
				}
			case manifest.SkillsSymlinkRule:
				for i, dir := range r.SkillDirs(d.env.AIRoot, d.env.Home) {
					if !isDir(dir) {
						// Extra directories are optional and often local-only.
						if i == 0 {
							add(t.ID, dir, "skills_symlink source does not exist")
						}
						continue
					}
					if !skillDirs[dir] {
						skillDirs[dir] = true
						skillOrder = append(skillOrder, dir)
					}
				}
			case manifest.SkillsGenerateRule:
				dir := filepath.Join(d.env.AIRoot, r.Source)
				if !isDir(dir) {
					add(t.ID, dir, "skills_generate source does not exist")
					continue
				}
				if !skillDirs[dir] {
					skillDirs[dir] = true
					skillOrder = append(skillOrder, dir)
				}
				if r.SkillFormat() == manifest.FormatTOML {
					tomlDirs[dir] = true
				}
			case manifest.MemoryGenerateRule:
				generatesMemory = true
				dir := filepath.Join(d.env.AIRoot, r.Source)
				if !isDir(dir) {
					add(t.ID, dir, "memory_generate source does not exist")
					continue
				}
				if !memDirs[dir] {
					memDirs[dir] = true
					memOrder = append(memOrder, dir)
				}
			}
		}

		requireAll := !generatesMemory && isDir(shared)
		docIssues, err := memory.LintToolDocs(toolDir, shared, requireAll)
		if err != nil {
			return issues, err
		}
		for _, i := range docIssues {
			add(t.ID, i.Path, "%s", i.Message)
		}
	}

	var all []skills.Skill
	for _, dir := range skillOrder {
		list, err := skills.Discover(dir)
		if err != nil {
			return issues, err
		}
		all = append(all, list...)
		if tomlDirs[dir] {
			for _, s := range list {
				text, err := convert.ConvertFile(s.Path)
				if err != nil {
					return issues, err
				}
				if err := convert.CheckTOML(text); err != nil {
					add("", s.Path, "does not convert to valid TOML: %v", err)
				}
			}
		}
	}
	for _, i := range skills.Lint(all) {
		add("", i.Path, "%s", i.Message)
	}

	if isDir(shared) && !memDirs[shared] {
		memOrder = append(memOrder, shared)
	}
	for _, dir := range memOrder {
		memIssues, err := memory.Lint(dir)
		if err != nil {
			return issues, err
		}
		for _, i := range memIssues {
			add("", i.Path, "%s", i.Message)
		}
	}
	return issues, nil
}
