package convert

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/RyanLiu6/setup/internal/frontmatter"
	"github.com/pelletier/go-toml/v2"
)

// Supported output formats.
const (
	FormatMarkdown = "md"
	FormatTOML     = "toml"
)

// ErrUnknownFormat is returned for an output format that has no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

const promptFence = `"""`

var descriptionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ToTOML renders a parsed document as a TOML prompt file. The description
// line is omitted when the header has no description. The body is placed
// verbatim between triple quotes and the output always ends with the
// closing fence.
func ToTOML(header frontmatter.Header, body string) string {
	var lines []string
	if desc := header.Get("description"); desc != "" {
		lines = append(lines, fmt.Sprintf(`description = "%s"`, descriptionEscaper.Replace(desc)))
	}
	lines = append(lines, "prompt = "+promptFence)
	lines = append(lines, body)
	lines = append(lines, promptFence)
	return strings.Join(lines, "\n")
}

// MarkdownToTOML parses raw markdown content and renders it with ToTOML.
func MarkdownToTOML(content string) string {
	header, body := frontmatter.Parse(content)
	return ToTOML(header, body)
}

// ConvertFile reads a markdown skill file and renders it as TOML.
func ConvertFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return MarkdownToTOML(string(data)), nil
}

// Render converts raw document content into the given format and returns
// the file extension to use (without the dot) and the rendered text.
// An empty format means markdown.
func Render(format, content string) (ext, text string, err error) {
	switch format {
	case FormatTOML:
		return FormatTOML, MarkdownToTOML(content), nil
	case FormatMarkdown, "":
		return FormatMarkdown, content, nil
	default:
		return "", "", fmt.Errorf("%w %q: supported formats are %q and %q", ErrUnknownFormat, format, FormatTOML, FormatMarkdown)
	}
}

// CheckTOML reports whether text is a well-formed TOML prompt file with a
// string prompt field. A body containing a triple quote or an invalid escape
// sequence is copied verbatim by ToTOML and fails here.
func CheckTOML(text string) error {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return fmt.Errorf("generated TOML does not parse: %w", err)
	}
	if _, ok := doc["prompt"].(string); !ok {
		return errors.New("generated TOML has no string prompt field")
	}
	return nil
}
