package skills

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/platform"
)

// Link links every skill directory found in dirs into dst as dst/<name>.
// Missing source directories are skipped. An entry of the same name in dst is
// replaced unless it already links to the right skill: a link is replaced
// outright, a real file or directory is backed up first. Dangling links left in
// dst by removed skills are pruned.
//
// dst itself is kept when it is a real directory; a link or file in its place
// is cleared first.
func Link(dirs []string, dst string, now time.Time, logger *log.Logger) (Result, error) {
	res := Result{Done: true}

	backup, err := prepareDir(dst, now)
	if err != nil {
		return Result{}, err
	}
	if backup != "" {
		res.Backup = backup
		logger.Info("backed up", "path", dst, "backup", filepath.Base(backup))
	}

	pruned, err := pruneDangling(dst)
	if err != nil {
		return res, err
	}
	for _, name := range pruned {
		logger.Info("pruned dangling skill link", "skill", name)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			logger.Info("skills directory not found, skipping", "path", dir)
			continue
		}

		list, err := DiscoverDirs(dir)
		if err != nil {
			return res, err
		}
		logger.Debug("linking skills", "from", dir, "count", len(list))

		for _, s := range list {
			source := filepath.Join(dir, s.Name)
			target := filepath.Join(dst, s.Name)
			if platform.PointsTo(target, source) {
				continue
			}
			// A stale link is dropped; a real entry is moved aside.
			moved, err := platform.BackupIfExists(target, now)
			if err != nil {
				return res, err
			}
			if moved != "" {
				res.EntryBackups = append(res.EntryBackups, moved)
				logger.Info("backed up", "path", target, "backup", filepath.Base(moved))
			}
			if err := platform.CreateSymlink(source, target); err != nil {
				return res, err
			}
			logger.Debug("linked skill", "skill", s.Name, "source", source)
			res.Written = append(res.Written, s.Name)
		}
	}

	res.Unchanged = len(res.Written) == 0 && len(pruned) == 0 && backup == "" && len(res.EntryBackups) == 0
	return res, nil
}

// prepareDir makes sure dst is a real directory. A symlink in its place is
// removed and a regular file is backed up.
func prepareDir(dst string, now time.Time) (string, error) {
	info, err := os.Lstat(dst)
	var backup string
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf("inspecting %s: %w", dst, err)
	case info.IsDir():
		return "", nil
	default:
		backup, err = platform.BackupIfExists(dst, now)
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return backup, fmt.Errorf("creating %s: %w", dst, err)
	}
	return backup, nil
}

func pruneDangling(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var pruned []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !platform.IsDangling(path) {
			continue
		}
		if err := platform.RemoveSymlink(path); err != nil {
			return pruned, fmt.Errorf("removing dangling link %s: %w", path, err)
		}
		pruned = append(pruned, e.Name())
	}
	return pruned, nil
}
