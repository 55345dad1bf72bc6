package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/RyanLiu6/setup/internal/frontmatter"
)

// Issue is a single problem found by Lint or LintToolDocs.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

var heading = regexp.MustCompile(`(?m)^#\s+`)

// Lint checks that every memory document in dir has content and a top-level
// heading.
func Lint(dir string) ([]Issue, error) {
	docs, err := Documents(dir)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return issues, fmt.Errorf("reading %s: %w", doc, err)
		}
		switch {
		case strings.TrimSpace(string(data)) == "":
			issues = append(issues, Issue{Path: doc, Message: "empty memory file"})
		case !heading.Match(data):
			issues = append(issues, Issue{Path: doc, Message: "missing top-level heading"})
		}
	}
	return issues, nil
}

// LintToolDocs checks the markdown documents at the top of a tool directory.
// Every @path reference must resolve. When requireAll is set, each memory
// document in memDir must be referenced by at least one of them; tools that
// receive generated memory instead of references pass false.
func LintToolDocs(toolDir, memDir string, requireAll bool) ([]Issue, error) {
	docs, err := Documents(toolDir)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	referenced := make(map[string]bool)
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return issues, fmt.Errorf("reading %s: %w", doc, err)
		}
		for _, ref := range frontmatter.References(string(data)) {
			resolved := frontmatter.ResolveReference(doc, ref)
			if _, err := os.Stat(resolved); err != nil {
				issues = append(issues, Issue{Path: doc, Message: fmt.Sprintf("broken reference @%s", ref)})
				continue
			}
			referenced[resolved] = true
		}
	}

	if !requireAll || len(docs) == 0 {
		return issues, nil
	}
	memDocs, err := Documents(memDir)
	if err != nil {
		return issues, err
	}
	for _, mem := range memDocs {
		if !referenced[filepath.Clean(mem)] {
			issues = append(issues, Issue{
				Path:    toolDir,
				Message: fmt.Sprintf("does not reference memory/%s", filepath.Base(mem)),
			})
		}
	}
	return issues, nil
}
