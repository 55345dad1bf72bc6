package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateSymlink creates a symbolic link at link pointing to target.
func CreateSymlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", link, target, err)
	}
	return nil
}

// RemoveSymlink removes the symlink at path. It refuses to remove anything
// that is not a link.
func RemoveSymlink(path string) error {
	if !IsSymlink(path) {
		return fmt.Errorf("%s is not a symlink", path)
	}
	return os.Remove(path)
}

// ReadSymlinkTarget returns the target of a symlink as stored on disk.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlink reports whether path itself is a symbolic link. Dangling links
// are still links.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Exists reports whether anything occupies path, including a dangling link.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDangling reports whether path is a symlink whose target is gone.
func IsDangling(path string) bool {
	if !IsSymlink(path) {
		return false
	}
	_, err := os.Stat(path)
	return err != nil
}

// PointsTo reports whether link is a symlink whose target is target.
// Relative link targets are resolved against the link's directory.
func PointsTo(link, target string) bool {
	dest, err := ReadSymlinkTarget(link)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest) == filepath.Clean(target)
}
