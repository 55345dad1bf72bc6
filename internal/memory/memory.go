package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/platform"
)

// Output modes for Generate.
const (
	ModeSingleFile = "single_file"
	ModeDirectory  = "directory"
)

// Result reports what Generate did.
type Result struct {
	// Done is false when the step was skipped and a warning was logged.
	Done bool
	// Written lists the memory documents included or copied.
	Written []string
	// Backup is set when an existing target was moved aside.
	Backup string
	// Unchanged is true when the target already held the expected content.
	Unchanged bool
}

// Documents returns the *.md files in dir sorted by file name.
func Documents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading memory directory %s: %w", dir, err)
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		docs = append(docs, filepath.Join(dir, e.Name()))
	}
	sort.Strings(docs)
	return docs, nil
}

// Generate writes the documents in src to configDir/target. In single_file
// mode the trimmed documents are joined with a blank line between each; in
// directory mode each document is copied as is. A missing or empty src, or
// an unknown mode, skips the step with a warning and writes nothing.
func Generate(src, configDir, target, mode string, now time.Time, logger *log.Logger) (Result, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("memory directory not found", "path", src)
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("inspecting %s: %w", src, err)
	}

	docs, err := Documents(src)
	if err != nil {
		return Result{}, err
	}
	if len(docs) == 0 {
		logger.Warn("no memory files found", "path", src)
		return Result{}, nil
	}

	dst := filepath.Join(configDir, target)
	switch mode {
	case ModeSingleFile:
		return writeSingleFile(docs, dst, now, logger)
	case ModeDirectory:
		return copyDirectory(docs, dst, now, logger)
	default:
		logger.Warn("unknown memory_generate mode", "mode", mode)
		return Result{}, nil
	}
}

// Concatenate joins the trimmed documents with a blank line between each and
// terminates the result with a newline.
func Concatenate(docs []string) ([]byte, error) {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", doc, err)
		}
		parts = append(parts, strings.TrimSpace(string(data)))
	}
	return []byte(strings.Join(parts, "\n\n") + "\n"), nil
}

func writeSingleFile(docs []string, dst string, now time.Time, logger *log.Logger) (Result, error) {
	content, err := Concatenate(docs)
	if err != nil {
		return Result{}, err
	}
	names := baseNames(docs)

	if platform.ContentEquals(dst, content) {
		logger.Debug("memory file up to date", "path", dst)
		return Result{Done: true, Written: names, Unchanged: true}, nil
	}

	backup, err := platform.BackupIfExists(dst, now)
	if err != nil {
		return Result{}, err
	}
	if backup != "" {
		logger.Info("backed up", "path", dst, "backup", filepath.Base(backup))
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return Result{Backup: backup}, fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return Result{Backup: backup}, fmt.Errorf("writing %s: %w", dst, err)
	}

	logger.Info("generated memory file", "path", dst)
	for _, name := range names {
		logger.Debug("included", "file", name)
	}
	return Result{Done: true, Written: names, Backup: backup}, nil
}

func copyDirectory(docs []string, dst string, now time.Time, logger *log.Logger) (Result, error) {
	want := make(map[string][]byte, len(docs))
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return Result{}, fmt.Errorf("reading %s: %w", doc, err)
		}
		want[filepath.Base(doc)] = data
	}
	names := baseNames(docs)

	if platform.DirMatches(dst, want) {
		logger.Debug("memory directory up to date", "path", dst)
		return Result{Done: true, Written: names, Unchanged: true}, nil
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

	res := Result{Done: true, Backup: backup}
	for _, doc := range docs {
		dest := filepath.Join(dst, filepath.Base(doc))
		if _, err := platform.RemovePath(dest); err != nil {
			return res, err
		}
		if err := platform.CopyFile(doc, dest); err != nil {
			return res, err
		}
		logger.Debug("copied", "file", filepath.Base(doc), "to", dest)
		res.Written = append(res.Written, filepath.Base(doc))
	}
	logger.Info("copied memory files", "path", dst)
	return res, nil
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
