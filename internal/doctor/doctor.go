package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RyanLiu6/setup/internal/branding"
	"github.com/RyanLiu6/setup/internal/convert"
	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/memory"
	"github.com/RyanLiu6/setup/internal/platform"
	"github.com/RyanLiu6/setup/internal/shellrc"
	"github.com/RyanLiu6/setup/internal/skills"
	"github.com/RyanLiu6/setup/internal/teardown"
	"github.com/RyanLiu6/setup/internal/ui"
)

// Check is the state of one managed path.
type Check struct {
	Status string // one of the ui.Status constants
	Path   string
	Detail string
}

// Report collects the checks for one tool.
type Report struct {
	ID      string
	Name    string
	Checks  []Check
	Backups int
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if c.Status != ui.StatusOK {
			return false
		}
	}
	return true
}

func (r *Report) add(status, path, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Status: status, Path: path, Detail: fmt.Sprintf(format, args...)})
}

// Doctor checks installed tools against an Env.
type Doctor struct {
	env     linker.Env
	shellRC string
}

// New returns a Doctor for env. Aliases are looked up in shellRC.
func New(env linker.Env, shellRC string) *Doctor {
	return &Doctor{env: env, shellRC: shellRC}
}

// CheckAll checks the selected tools in declaration order.
func (d *Doctor) CheckAll(tools []*manifest.Tool) ([]*Report, error) {
	reports := make([]*Report, 0, len(tools))
	for _, t := range tools {
		r, err := d.CheckTool(t)
		if err != nil {
			return reports, fmt.Errorf("checking %s: %w", t.ID, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// CheckTool inspects every rule of tool.
func (d *Doctor) CheckTool(tool *manifest.Tool) (*Report, error) {
	r := &Report{ID: tool.ID, Name: tool.Name}
	toolDir := tool.ToolPath(d.env.AIRoot)
	configDir := tool.ConfigPath(d.env.Home)

	if _, err := os.Stat(toolDir); err != nil {
		r.add(ui.StatusMiss, toolDir, "tool directory not found")
		return r, nil
	}

	for _, rule := range tool.Rules() {
		switch rr := rule.(type) {
		case manifest.SettingsTemplateRule:
			d.checkSettings(r, filepath.Join(toolDir, rr.Target))
		case manifest.SymlinkRule:
			checkLink(r, filepath.Join(toolDir, rr.Source), filepath.Join(configDir, rr.Target))
		case manifest.SkillsSymlinkRule:
			if err := d.checkSkillLinks(r, rr, filepath.Join(configDir, rr.Target)); err != nil {
				return r, err
			}
		case manifest.SkillsGenerateRule:
			if err := d.checkGeneratedSkills(r, rr, filepath.Join(configDir, rr.Target)); err != nil {
				return r, err
			}
		case manifest.MemoryGenerateRule:
			if err := d.checkMemory(r, rr, filepath.Join(configDir, rr.Target)); err != nil {
				return r, err
			}
		case manifest.ShellAliasRule:
			d.checkAlias(r, rr)
		}
	}

	backups, err := teardown.ToolBackups(configDir)
	if err != nil {
		return r, err
	}
	r.Backups = len(backups)
	return r, nil
}

func (d *Doctor) checkSettings(r *Report, path string) {
	if isRegular(path) {
		r.add(ui.StatusOK, path, "settings file present")
		return
	}
	r.add(ui.StatusMiss, path, "settings file not created yet")
}

func checkLink(r *Report, source, target string) {
	switch {
	case platform.PointsTo(target, source):
		if platform.IsDangling(target) {
			r.add(ui.StatusWarn, target, "links to missing %s", source)
			return
		}
		r.add(ui.StatusOK, target, "-> %s", source)
	case platform.IsDangling(target):
		dest, _ := platform.ReadSymlinkTarget(target)
		r.add(ui.StatusWarn, target, "dangling link to %s", dest)
	case platform.IsSymlink(target):
		dest, _ := platform.ReadSymlinkTarget(target)
		r.add(ui.StatusWarn, target, "links to %s instead of %s", dest, source)
	case platform.Exists(target):
		r.add(ui.StatusWarn, target, "real file where a link is expected")
	default:
		r.add(ui.StatusMiss, target, "not linked")
	}
}

func (d *Doctor) checkSkillLinks(r *Report, rule manifest.SkillsSymlinkRule, dst string) error {
	if !isDir(dst) {
		r.add(ui.StatusMiss, dst, "skills directory not found")
		return nil
	}

	total, linked := 0, 0
	for _, dir := range rule.SkillDirs(d.env.AIRoot, d.env.Home) {
		if !isDir(dir) {
			continue
		}
		list, err := skills.DiscoverDirs(dir)
		if err != nil {
			return err
		}
		for _, s := range list {
			total++
			if platform.PointsTo(filepath.Join(dst, s.Name), filepath.Join(dir, s.Name)) {
				linked++
			}
		}
	}

	dangling, err := danglingLinks(dst)
	if err != nil {
		return err
	}
	switch {
	case len(dangling) > 0:
		r.add(ui.StatusWarn, dst, "%d dangling skill links", len(dangling))
	case linked < total:
		r.add(ui.StatusWarn, dst, "%d of %d skills linked", linked, total)
	default:
		r.add(ui.StatusOK, dst, "%d skills linked", linked)
	}
	return nil
}

func (d *Doctor) checkGeneratedSkills(r *Report, rule manifest.SkillsGenerateRule, dst string) error {
	src := filepath.Join(d.env.AIRoot, rule.Source)
	if !isDir(src) {
		r.add(ui.StatusWarn, src, "skills source not found")
		return nil
	}
	list, err := skills.Discover(src)
	if err != nil {
		return err
	}
	if !isDir(dst) {
		r.add(ui.StatusMiss, dst, "generated skills not found")
		return nil
	}

	ext := convert.FormatMarkdown
	if rule.SkillFormat() == manifest.FormatTOML {
		ext = convert.FormatTOML
	}
	missing := 0
	for _, s := range list {
		if !isRegular(filepath.Join(dst, s.Name+"."+ext)) {
			missing++
		}
	}
	if missing > 0 {
		r.add(ui.StatusWarn, dst, "%d of %d generated skills missing", missing, len(list))
		return nil
	}
	r.add(ui.StatusOK, dst, "%d generated skills", len(list))
	return nil
}

func (d *Doctor) checkMemory(r *Report, rule manifest.MemoryGenerateRule, dst string) error {
	src := filepath.Join(d.env.AIRoot, rule.Source)
	if !isDir(src) {
		r.add(ui.StatusWarn, src, "memory source not found")
		return nil
	}
	docs, err := memory.Documents(src)
	if err != nil {
		return err
	}

	switch rule.Mode {
	case manifest.ModeSingleFile, manifest.ModeDirectory:
	default:
		r.add(ui.StatusWarn, dst, "unknown memory mode %q", rule.Mode)
		return nil
	}

	if rule.Mode == manifest.ModeSingleFile {
		if !isRegular(dst) {
			r.add(ui.StatusMiss, dst, "generated memory not found")
			return nil
		}
		r.add(ui.StatusOK, dst, "generated from %d documents", len(docs))
		return nil
	}

	if !isDir(dst) {
		r.add(ui.StatusMiss, dst, "memory directory not found")
		return nil
	}
	missing := 0
	for _, doc := range docs {
		if !isRegular(filepath.Join(dst, filepath.Base(doc))) {
			missing++
		}
	}
	if missing > 0 {
		r.add(ui.StatusWarn, dst, "%d of %d memory documents missing", missing, len(docs))
		return nil
	}
	r.add(ui.StatusOK, dst, "%d memory documents", len(docs))
	return nil
}

func (d *Doctor) checkAlias(r *Report, rule manifest.ShellAliasRule) {
	present, err := shellrc.HasAlias(d.shellRC, rule.Alias)
	switch {
	case errors.Is(err, shellrc.ErrNoStartupFile):
		r.add(ui.StatusMiss, d.shellRC, "startup file not found")
	case err != nil:
		r.add(ui.StatusWarn, d.shellRC, "%v", err)
	case present:
		r.add(ui.StatusOK, d.shellRC, "alias present")
	default:
		r.add(ui.StatusMiss, d.shellRC, "alias not added")
	}
}

// Print writes the reports in the [ OK ] / [MISS] / [WARN] layout.
func Print(w io.Writer, reports []*Report) {
	for _, r := range reports {
		fmt.Fprintf(w, "%s (%s):\n", ui.IDStyle.Render(r.ID), r.Name)
		for _, c := range r.Checks {
			fmt.Fprintf(w, "  %s %s %s\n", ui.Tag(c.Status), c.Path, ui.SubtitleStyle.Render(c.Detail))
		}
		if r.Backups > 0 {
			fmt.Fprintf(w, "  %d backup(s) present, run '%s cleanup' to remove\n", r.Backups, branding.CLIName())
		}
	}
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func danglingLinks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var dangling []string
	for _, e := range entries {
		if platform.IsDangling(filepath.Join(dir, e.Name())) {
			dangling = append(dangling, e.Name())
		}
	}
	return dangling, nil
}
