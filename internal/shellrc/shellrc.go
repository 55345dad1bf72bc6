package shellrc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Marker separates managed startup-file content from lines that tools
// install themselves.
const Marker = "# Tools install themselves below this line"

// ErrNoStartupFile is returned by AddAlias when the startup file is missing.
var ErrNoStartupFile = errors.New("shell startup file not found")

// ValidateAlias checks that line parses as a single shell alias command.
func ValidateAlias(line string) error {
	f, err := syntax.NewParser().Parse(strings.NewReader(line), "alias")
	if err != nil {
		return fmt.Errorf("parsing alias %q: %w", line, err)
	}
	if len(f.Stmts) != 1 {
		return fmt.Errorf("alias %q must be a single command", line)
	}
	call, ok := f.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) < 2 || call.Args[0].Lit() != "alias" {
		return fmt.Errorf("%q is not an alias command", line)
	}
	return nil
}

// AddAlias appends the alias line, preceded by comment when set, to the
// startup file at path. It reports whether the file was changed; a file that
// already contains the alias line is left alone.
func AddAlias(path, alias, comment string) (bool, error) {
	if err := ValidateAlias(alias); err != nil {
		return false, err
	}

	present, err := HasAlias(path, alias)
	if err != nil || present {
		return false, err
	}

	block := "\n"
	if comment != "" {
		block += comment + "\n"
	}
	block += alias + "\n"

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("writing to %s: %w", path, err)
	}
	return true, nil
}

// HasAlias reports whether the startup file at path already contains the
// alias line. A missing file is ErrNoStartupFile.
func HasAlias(path, alias string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: %s", ErrNoStartupFile, path)
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.Contains(string(content), alias), nil
}

// ExtractToolContent returns the marker line and everything after it from the
// startup file at path. It returns "" when the file is missing or a symlink,
// has no marker, or has only whitespace after the marker.
func ExtractToolContent(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	idx := strings.Index(string(content), Marker)
	if idx == -1 {
		return "", nil
	}
	preserved := string(content[idx:])
	if strings.TrimSpace(preserved[len(Marker):]) == "" {
		return "", nil
	}
	return preserved, nil
}

// RestoreToolContent replaces everything from the marker onward in the
// startup file at path with content, as returned by ExtractToolContent. It
// reports false when the file has no marker, in which case it is unchanged.
//
// The file is written in place so a symlinked startup file keeps its link
// and the change lands in the link target.
func RestoreToolContent(path, content string) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	idx := strings.Index(string(current), Marker)
	if idx == -1 {
		return false, nil
	}

	updated := string(current[:idx]) + content
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
