package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFile copies a single file from src to dst, preserving permissions and
// the modification time. An existing dst is overwritten.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", src, err)
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	// WriteFile only applies the mode on create and is subject to umask.
	if err := Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}

// ContentEquals reports whether path is a regular file (not a link) whose
// content is exactly data.
func ContentEquals(path string, data []byte) bool {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(current, data)
}

// DirMatches reports whether dir is a real directory holding exactly the
// given regular files with exactly the given contents.
func DirMatches(dir string, files map[string][]byte) bool {
	info, err := os.Lstat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != len(files) {
		return false
	}
	for _, e := range entries {
		want, ok := files[e.Name()]
		if !ok {
			return false
		}
		if !ContentEquals(filepath.Join(dir, e.Name()), want) {
			return false
		}
	}
	return true
}

// RemoveKind reports what RemovePath deleted.
type RemoveKind int

const (
	// RemovedNothing means the path did not exist.
	RemovedNothing RemoveKind = iota
	// RemovedLink means a symlink was unlinked.
	RemovedLink
	// RemovedDir means a directory was removed recursively.
	RemovedDir
	// RemovedFile means a regular file was unlinked.
	RemovedFile
)

// String returns what kind of entry was removed.
func (k RemoveKind) String() string {
	switch k {
	case RemovedLink:
		return "symlink"
	case RemovedDir:
		return "directory"
	case RemovedFile:
		return "file"
	default:
		return "nothing"
	}
}

// RemovePath deletes whatever occupies path: a symlink is unlinked (its
// target is untouched), a directory is removed recursively, anything else is
// unlinked.
func RemovePath(path string) (RemoveKind, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return RemovedNothing, nil
	}
	if err != nil {
		return RemovedNothing, fmt.Errorf("inspecting %s: %w", path, err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		if err := os.Remove(path); err != nil {
			return RemovedNothing, fmt.Errorf("removing symlink %s: %w", path, err)
		}
		return RemovedLink, nil
	case info.IsDir():
		if err := os.RemoveAll(path); err != nil {
			return RemovedNothing, fmt.Errorf("removing directory %s: %w", path, err)
		}
		return RemovedDir, nil
	default:
		if err := os.Remove(path); err != nil {
			return RemovedNothing, fmt.Errorf("removing %s: %w", path, err)
		}
		return RemovedFile, nil
	}
}
