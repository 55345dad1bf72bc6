// Package frontmatter splits a markdown document into its "key: value"
// header block and its body. Parsing is permissive: malformed or missing
// frontmatter degrades to a body-only document and never returns an error.
//
// The package also extracts @path include lines, which some tools expand in
// place when loading a document.
package frontmatter

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// Header holds the key-value pairs of a frontmatter block. Nested structure
// is not supported.
type Header map[string]string

// Get returns the value for key, or "" when the key is absent.
func (h Header) Get(key string) string {
	return h[key]
}

// Has reports whether key was present in the header, even with an empty value.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Parse splits content into header and body. When content starts with the
// delimiter and contains a second one, the text between them is read as
// "key: value" lines and the trimmed remainder is the body. Otherwise the
// header is empty and the body is content unchanged.
func Parse(content string) (Header, string) {
	header := Header{}
	if !strings.HasPrefix(content, Delimiter) {
		return header, content
	}

	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return header, content
	}

	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		header[key] = strings.TrimSpace(value)
	}

	return header, strings.TrimSpace(parts[2])
}

var referenceLine = regexp.MustCompile(`(?m)^@(.+)$`)

// References returns the targets of every line of the form @path, in order
// of appearance. Targets are returned as written.
func References(content string) []string {
	var refs []string
	for _, m := range referenceLine.FindAllStringSubmatch(content, -1) {
		refs = append(refs, strings.TrimRight(m[1], "\r"))
	}
	return refs
}

// ResolveReference returns the file named by ref as written in the document
// at path. Relative refs resolve against the document's directory.
func ResolveReference(path, ref string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(filepath.Dir(path), ref)
}
