package skills

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/convert"
	"github.com/RyanLiu6/setup/internal/platform"
)

// Result reports what Generate or Link did.
type Result struct {
	// Done is false when the step was skipped and a warning was logged.
	Done bool
	// Written lists the files or links created, relative to the target.
	Written []string
	// Backup is set when an existing target was moved aside.
	Backup string
	// EntryBackups lists entries inside the target that Link moved aside.
	EntryBackups []string
	// Unchanged is true when the target already held the expected content.
	Unchanged bool
}

// Generate renders every skill in src into dst as one <name>.<ext> file per
// skill. A missing or empty src skips the step with a warning. A real dst
// whose contents differ is backed up first; a dst that already matches is
// left alone.
func Generate(src, dst, format string, now time.Time, logger *log.Logger) (Result, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("skills directory not found", "path", src)
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("inspecting %s: %w", src, err)
	}

	list, err := Discover(src)
	if err != nil {
		return Result{}, err
	}
	if len(list) == 0 {
		logger.Warn("no skill files found", "path", src)
		return Result{}, nil
	}

	files := make(map[string][]byte, len(list))
	var names []string
	for _, s := range list {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return Result{}, fmt.Errorf("reading skill %s: %w", s.Name, err)
		}
		ext, text, err := convert.Render(format, string(data))
		if err != nil {
			return Result{}, fmt.Errorf("skill %s: %w", s.Name, err)
		}
		if ext == convert.FormatTOML {
			if err := convert.CheckTOML(text); err != nil {
				logger.Warn("generated prompt is not valid TOML", "skill", s.Name, "err", err)
			}
		}
		name := s.Name + "." + ext
		if _, dup := files[name]; dup {
			logger.Warn("duplicate skill name, later file wins", "skill", s.Name, "path", s.Path)
		} else {
			names = append(names, name)
		}
		files[name] = []byte(text + "\n")
	}

	if platform.DirMatches(dst, files) {
		logger.Debug("generated skills up to date", "path", dst)
		return Result{Done: true, Unchanged: true}, nil
	}

	backup, err := platform.BackupIfExists(dst, now)
	if err != nil {
		return Result{}, err
	}
	if backup != "" {
		logger.Info("backed up", "path", dst, "backup", filepath.Base(backup))
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return Result{Backup: backup}, fmt.Errorf("creating %s: %w", dst, err)
	}

	logger.Info("generating skills", "format", format, "path", dst)
	res := Result{Done: true, Backup: backup}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dst, name), files[name], 0644); err != nil {
			return res, fmt.Errorf("writing %s: %w", name, err)
		}
		logger.Debug("wrote skill", "file", name)
		res.Written = append(res.Written, name)
	}
	return res, nil
}
