package skills

import (
	"fmt"
	"os"
	"strings"

	"github.com/RyanLiu6/setup/internal/frontmatter"
)

// Issue is a single problem found by Lint.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Lint checks every skill in list and reports problems. A skill must open
// with a frontmatter block carrying a non-empty description and must have a
// body. A name key, when present, must match the skill name. Lines of the
// form @path must point at an existing file relative to the skill. Duplicate
// skill names are reported once each.
func Lint(list []Skill) []Issue {
	var issues []Issue
	for _, s := range list {
		issues = append(issues, lintSkill(s)...)
	}
	for _, name := range Duplicates(list) {
		issues = append(issues, Issue{Path: name, Message: "duplicate skill name"})
	}
	return issues
}

func lintSkill(s Skill) []Issue {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return []Issue{{Path: s.Path, Message: fmt.Sprintf("unreadable: %v", err)}}
	}
	content := string(data)

	if !strings.HasPrefix(content, frontmatter.Delimiter) {
		return []Issue{{Path: s.Path, Message: "missing frontmatter"}}
	}

	var issues []Issue
	header, body := frontmatter.Parse(content)
	if header.Get("description") == "" {
		issues = append(issues, Issue{Path: s.Path, Message: "missing or empty description"})
	}
	if body == "" {
		issues = append(issues, Issue{Path: s.Path, Message: "empty body"})
	}
	if header.Has("name") && header.Get("name") != s.Name {
		issues = append(issues, Issue{
			Path:    s.Path,
			Message: fmt.Sprintf("name %q does not match skill name %q", header.Get("name"), s.Name),
		})
	}
	return append(issues, brokenReferences(s.Path, content)...)
}

// brokenReferences reports @path lines that do not resolve relative to the
// file containing them.
func brokenReferences(path, content string) []Issue {
	var issues []Issue
	for _, ref := range frontmatter.References(content) {
		if _, err := os.Stat(frontmatter.ResolveReference(path, ref)); err != nil {
			issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("broken reference @%s", ref)})
		}
	}
	return issues
}
