package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/manifest"
)

// DefaultDebounce is the quiet period after the last event before the
// affected tools are regenerated.
const DefaultDebounce = 250 * time.Millisecond

// defaultIgnores match file names of editor and OS noise that never
// triggers regeneration.
var defaultIgnores = []string{
	"*.sw[a-p]",
	"*~",
	"4913",
	".DS_Store",
	".#*",
}

// Regenerator re-runs the generate rules of a tool.
type Regenerator interface {
	Regenerate(tool *manifest.Tool) (*linker.Result, error)
}

// Target pairs a tool with the source directories its generate rules read.
type Target struct {
	Tool *manifest.Tool
	Dirs []string
}

// Targets returns the tools among tools that have generate rules, with their
// existing source directories.
func Targets(tools []*manifest.Tool, aiRoot string) []Target {
	var targets []Target
	for _, t := range tools {
		var dirs []string
		for _, rule := range t.Rules() {
			var src string
			switch r := rule.(type) {
			case manifest.SkillsGenerateRule:
				src = r.Source
			case manifest.MemoryGenerateRule:
				src = r.Source
			default:
				continue
			}
			dir := filepath.Join(aiRoot, src)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) > 0 {
			targets = append(targets, Target{Tool: t, Dirs: dirs})
		}
	}
	return targets
}

// Config holds the parameters for a Watcher.
type Config struct {
	// Debounce falls back to DefaultDebounce when zero or negative.
	Debounce time.Duration
	Logger   *log.Logger
	// OnRegenerate is called after each tool is regenerated. nil is a no-op.
	OnRegenerate func(res *linker.Result, err error)
}

// Watcher regenerates tools when their source directories change.
type Watcher struct {
	regen    Regenerator
	targets  []Target
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
	onRegen  func(*linker.Result, error)
}

// ErrNothingToWatch is returned by New when no tool has a generate rule with
// an existing source.
var ErrNothingToWatch = errors.New("no generated artifacts to watch")

// New registers every source directory of targets, recursively.
func New(regen Regenerator, targets []Target, cfg Config) (*Watcher, error) {
	if len(targets) == 0 {
		return nil, ErrNothingToWatch
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		regen:    regen,
		targets:  targets,
		fsw:      fsw,
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		onRegen:  cfg.OnRegenerate,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}

	for _, dir := range w.Dirs() {
		if err := w.addTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Dirs returns the watched source directories without duplicates.
func (w *Watcher) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, t := range w.targets {
		for _, d := range t.Dirs {
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching", "path", path)
		return nil
	})
}

// Run blocks until ctx is cancelled, regenerating the affected tools after
// each burst of changes. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if isIgnored(evt.Name) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						w.logger.Warn("watching new directory", "err", err)
					}
				}
			}

			affected := w.affected(evt.Name)
			if len(affected) == 0 {
				continue
			}
			w.logger.Debug("change", "path", evt.Name, "op", evt.Op.String())
			for _, id := range affected {
				pending[id] = true
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.regenerate(pending)
			pending = make(map[string]bool)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// affected returns the ids of the tools whose sources contain path.
func (w *Watcher) affected(path string) []string {
	var ids []string
	for _, t := range w.targets {
		for _, d := range t.Dirs {
			if path == d || strings.HasPrefix(path, d+string(filepath.Separator)) {
				ids = append(ids, t.Tool.ID)
				break
			}
		}
	}
	return ids
}

// regenerate runs the pending tools in declaration order.
func (w *Watcher) regenerate(pending map[string]bool) {
	for _, t := range w.targets {
		if !pending[t.Tool.ID] {
			continue
		}
		res, err := w.regen.Regenerate(t.Tool)
		switch {
		case err != nil:
			w.logger.Error("regeneration failed", "tool", t.Tool.ID, "err", err)
		case !res.OK():
			w.logger.Warn("regenerated with warnings", "tool", t.Tool.ID, "warnings", len(res.Warnings))
		default:
			w.logger.Info("regenerated", "tool", t.Tool.ID, "files", len(res.Generated))
		}
		if w.onRegen != nil {
			w.onRegen(res, err)
		}
	}
}

// isIgnored reports whether path is editor or OS noise.
func isIgnored(path string) bool {
	name := filepath.Base(path)
	for _, pat := range defaultIgnores {
		if matched, err := doublestar.Match(pat, name); err == nil && matched {
			return true
		}
	}
	return false
}
