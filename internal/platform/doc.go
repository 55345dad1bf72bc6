// Package platform provides the filesystem primitives every managed artifact
// relies on: replace-or-backup before overwrite, symlink creation that refuses
// missing sources, metadata-preserving copies, and type-aware removal.
//
// Real files and directories are never deleted when they are replaced; they
// are renamed aside to <name>.backup.<YYYYMMDD_HHMMSS>. Symlinks are treated
// as disposable and removed outright.
package platform
