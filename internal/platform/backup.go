package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

const (
	// BackupInfix separates the original name from the timestamp.
	BackupInfix = ".backup."
	// TimestampLayout is the YYYYMMDD_HHMMSS suffix of backup names.
	TimestampLayout = "20060102_150405"
)

// ErrSourceMissing is returned by Link when the declared source does not exist.
var ErrSourceMissing = errors.New("source does not exist")

// BackupName returns the backup path for path at time t.
func BackupName(path string, t time.Time) string {
	return path + BackupInfix + t.Format(TimestampLayout)
}

// BackupIfExists clears path so it can be rewritten. A real file or directory
// is renamed aside and the backup path is returned; a symlink is removed
// without a backup. After a nil error the path is guaranteed absent.
func BackupIfExists(path string, now time.Time) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("inspecting %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("removing stale symlink %s: %w", path, err)
		}
		return "", nil
	}

	backup := uniqueBackupName(path, now)
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return backup, nil
}

// uniqueBackupName appends _1, _2, ... when a backup from the same second
// already exists.
func uniqueBackupName(path string, now time.Time) string {
	base := BackupName(path, now)
	candidate := base
	for i := 1; Exists(candidate); i++ {
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	return candidate
}

// LinkResult describes what Link did to the target.
type LinkResult int

const (
	// LinkCreated means a new symlink was written.
	LinkCreated LinkResult = iota
	// LinkUnchanged means the target already pointed at the source.
	LinkUnchanged
)

// String returns a human-readable name for the result.
func (r LinkResult) String() string {
	switch r {
	case LinkCreated:
		return "created"
	case LinkUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// LinkOutcome is returned by Link.
type LinkOutcome struct {
	Result LinkResult
	Backup string // set when a real file or directory was moved aside
}

// Link points target at source. The source must exist. Whatever currently
// occupies target goes through BackupIfExists first, unless it is already a
// link to source, in which case nothing changes.
func Link(source, target string, now time.Time) (LinkOutcome, error) {
	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LinkOutcome{}, fmt.Errorf("%w: %s", ErrSourceMissing, source)
		}
		return LinkOutcome{}, fmt.Errorf("inspecting source %s: %w", source, err)
	}

	if PointsTo(target, source) {
		return LinkOutcome{Result: LinkUnchanged}, nil
	}

	backup, err := BackupIfExists(target, now)
	if err != nil {
		return LinkOutcome{}, err
	}

	if err := CreateSymlink(source, target); err != nil {
		return LinkOutcome{Backup: backup}, err
	}
	return LinkOutcome{Result: LinkCreated, Backup: backup}, nil
}
