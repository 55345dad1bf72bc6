package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Load when tools.json does not exist.
var ErrNotFound = errors.New("tools.json not found")

// SchemaError is returned by Load when the document fails schema validation.
type SchemaError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s does not match the schema:", e.Path)
	for _, issue := range e.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(&b, "\n  %s: %s", loc, issue.Message)
	}
	return b.String()
}

// Path returns the location of tools.json inside aiRoot.
func Path(aiRoot string) string {
	return filepath.Join(aiRoot, ConfigFile)
}

// Load reads, validates and decodes the tools.json at path. Structural
// schema failures (missing required fields, wrong types) are a *SchemaError.
// Advisory failures are kept on the config in Advisories so the rules they
// affect can fail individually.
func Load(path string) (*ToolsConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if fatal := result.Fatal(); len(fatal) > 0 {
		return nil, &SchemaError{Path: path, Issues: fatal}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Advisories = result.Advisories()
	return cfg, nil
}

// Parse decodes a tools.json document without schema validation. Tools keep
// the order in which they appear in the document.
func Parse(data []byte) (*ToolsConfig, error) {
	var doc struct {
		Requires string          `json:"requires"`
		Tools    json.RawMessage `json:"tools"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cfg := &ToolsConfig{Requires: doc.Requires}
	if len(doc.Tools) == 0 {
		return cfg, nil
	}

	ids, err := objectKeys(doc.Tools)
	if err != nil {
		return nil, fmt.Errorf("reading tools: %w", err)
	}
	var byID map[string]*Tool
	if err := json.Unmarshal(doc.Tools, &byID); err != nil {
		return nil, fmt.Errorf("decoding tools: %w", err)
	}

	for _, id := range ids {
		tool := byID[id]
		if tool == nil {
			return nil, fmt.Errorf("tool %q is null", id)
		}
		tool.ID = id
		cfg.Tools = append(cfg.Tools, tool)
	}
	return cfg, nil
}

// objectKeys returns the keys of a JSON object in document order. A key that
// appears twice is reported once, at its first position, matching the
// last-wins value that encoding/json decodes.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected an object")
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
