package linker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/memory"
	"github.com/RyanLiu6/setup/internal/platform"
	"github.com/RyanLiu6/setup/internal/shellrc"
	"github.com/RyanLiu6/setup/internal/skills"
)

// ErrSettingsDeclined is returned when the user declines to create a
// required settings file from its template. It aborts the whole run.
var ErrSettingsDeclined = errors.New("settings file is required")

// ErrNoTools is returned by Install when no requested tool is declared.
var ErrNoTools = errors.New("no tools to install")

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Linker installs tools into an Env.
type Linker struct {
	env         Env
	logger      *log.Logger
	confirm     ConfirmFunc
	interactive bool
	now         func() time.Time
	shellRC     string
}

// Option configures a Linker.
type Option func(*Linker)

// WithLogger sets the logger for step output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Linker) { l.logger = logger }
}

// WithConfirm sets the function used to ask before creating a settings file.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(l *Linker) { l.confirm = confirm }
}

// WithInteractive controls whether the user is asked before a settings file
// is created from its template. When false the file is created silently.
func WithInteractive(interactive bool) Option {
	return func(l *Linker) { l.interactive = interactive }
}

// WithClock sets the time source used to name backups.
func WithClock(now func() time.Time) Option {
	return func(l *Linker) { l.now = now }
}

// WithShellRC sets the shell startup file that receives tool aliases.
func WithShellRC(path string) Option {
	return func(l *Linker) { l.shellRC = path }
}

// New returns a Linker for env.
func New(env Env, opts ...Option) *Linker {
	l := &Linker{
		env:     env,
		logger:  log.New(io.Discard),
		confirm: func(string) (bool, error) { return false, nil },
		now:     time.Now,
		shellRC: env.ShellRC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Env returns the roots the linker operates on.
func (l *Linker) Env() Env {
	return l.env
}

// Select returns the tools named by ids in declaration order, or every tool
// when ids is empty. Unknown ids are logged and skipped.
func (l *Linker) Select(cfg *manifest.ToolsConfig, ids []string) ([]*manifest.Tool, error) {
	if len(cfg.Tools) == 0 {
		return nil, fmt.Errorf("%w: none declared in %s", ErrNoTools, manifest.ConfigFile)
	}
	if len(ids) == 0 {
		return cfg.Tools, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := cfg.Lookup(id); !ok {
			l.logger.Warn("unknown tool", "id", id)
			continue
		}
		wanted[id] = true
	}

	var tools []*manifest.Tool
	for _, t := range cfg.Tools {
		if wanted[t.ID] {
			tools = append(tools, t)
		}
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("%w: none of %v are declared (known: %s)",
			ErrNoTools, ids, strings.Join(cfg.IDs(), ", "))
	}
	return tools, nil
}

// Install installs the selected tools in declaration order. It stops at the
// first fatal error and returns the results gathered so far.
func (l *Linker) Install(cfg *manifest.ToolsConfig, ids []string) ([]*Result, error) {
	tools, err := l.Select(cfg, ids)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(tools))
	for _, t := range tools {
		res, err := l.InstallTool(t)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// InstallTool runs every rule of tool. Rule failures are recorded in the
// result; the returned error is reserved for conditions that must stop the
// whole run.
func (l *Linker) InstallTool(tool *manifest.Tool) (*Result, error) {
	return l.run(tool, tool.Rules())
}

// Regenerate re-runs only the generate rules of tool.
func (l *Linker) Regenerate(tool *manifest.Tool) (*Result, error) {
	var rules []manifest.Rule
	for _, r := range tool.Rules() {
		switch r.(type) {
		case manifest.SkillsGenerateRule, manifest.MemoryGenerateRule:
			rules = append(rules, r)
		}
	}
	return l.run(tool, rules)
}

func (l *Linker) run(tool *manifest.Tool, rules []manifest.Rule) (*Result, error) {
	res := &Result{ID: tool.ID, Name: tool.Name}
	toolDir := tool.ToolPath(l.env.AIRoot)
	configDir := tool.ConfigPath(l.env.Home)
	logger := l.logger.With("tool", tool.ID)

	logger.Debug("paths", "source", toolDir, "target", configDir)

	if _, err := os.Stat(toolDir); err != nil {
		logger.Warn("tool directory not found, skipping", "path", toolDir)
		res.Skipped = true
		res.warnf("tool directory %s not found", toolDir)
		return res, nil
	}

	if _, err := os.Stat(configDir); err != nil {
		logger.Info("creating config directory", "path", configDir)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			res.Skipped = true
			res.warnf("creating config directory: %v", err)
			return res, nil
		}
	}

	for _, rule := range rules {
		if err := l.apply(rule, toolDir, configDir, res, logger); err != nil {
			if errors.Is(err, ErrSettingsDeclined) {
				return res, err
			}
			logger.Warn("step failed", "rule", rule.Kind(), "err", err)
			res.warnf("%s: %v", rule.Kind(), err)
		}
	}
	return res, nil
}

// apply runs a single rule. A returned error marks the rule as failed.
func (l *Linker) apply(rule manifest.Rule, toolDir, configDir string, res *Result, logger *log.Logger) error {
	now := l.now()

	switch r := rule.(type) {
	case manifest.SettingsTemplateRule:
		return l.ensureSettings(toolDir, r, logger)

	case manifest.SymlinkRule:
		source := filepath.Join(toolDir, r.Source)
		target := filepath.Join(configDir, r.Target)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		out, err := platform.Link(source, target, now)
		if out.Backup != "" {
			res.BackedUp = append(res.BackedUp, out.Backup)
			logger.Info("backed up", "path", target, "backup", filepath.Base(out.Backup))
		}
		if err != nil {
			return err
		}
		if out.Result == platform.LinkCreated {
			res.Linked = append(res.Linked, target)
			logger.Info("linked", "name", r.Source, "target", target)
		} else {
			logger.Debug("already linked", "name", r.Source)
		}
		return nil

	case manifest.SkillsSymlinkRule:
		target := filepath.Join(configDir, r.Target)
		out, err := skills.Link(r.SkillDirs(l.env.AIRoot, l.env.Home), target, now, logger)
		if out.Backup != "" {
			res.BackedUp = append(res.BackedUp, out.Backup)
		}
		res.BackedUp = append(res.BackedUp, out.EntryBackups...)
		for _, name := range out.Written {
			res.Linked = append(res.Linked, filepath.Join(target, name))
		}
		if err == nil && len(out.Written) > 0 {
			logger.Info("linked skills", "count", len(out.Written), "target", target)
		}
		return err

	case manifest.SkillsGenerateRule:
		target := filepath.Join(configDir, r.Target)
		out, err := skills.Generate(filepath.Join(l.env.AIRoot, r.Source), target, r.SkillFormat(), now, logger)
		if out.Backup != "" {
			res.BackedUp = append(res.BackedUp, out.Backup)
		}
		for _, name := range out.Written {
			res.Generated = append(res.Generated, filepath.Join(target, name))
		}
		if err != nil {
			return err
		}
		if !out.Done {
			return fmt.Errorf("no skills generated from %s", r.Source)
		}
		return nil

	case manifest.MemoryGenerateRule:
		target := filepath.Join(configDir, r.Target)
		out, err := memory.Generate(filepath.Join(l.env.AIRoot, r.Source), configDir, r.Target, r.Mode, now, logger)
		if out.Backup != "" {
			res.BackedUp = append(res.BackedUp, out.Backup)
		}
		if err != nil {
			return err
		}
		if !out.Done {
			return fmt.Errorf("no memory generated from %s", r.Source)
		}
		if !out.Unchanged {
			res.Generated = append(res.Generated, target)
		}
		return nil

	case manifest.ShellAliasRule:
		added, err := shellrc.AddAlias(l.shellRC, r.Alias, r.Comment)
		if err != nil {
			return err
		}
		if added {
			logger.Info("added alias", "file", l.shellRC, "alias", r.Alias)
			logger.Info("restart your shell or source the file to apply", "file", l.shellRC)
		} else {
			logger.Debug("alias already present", "file", l.shellRC)
		}
		return nil

	default:
		return fmt.Errorf("unsupported rule %T", rule)
	}
}
