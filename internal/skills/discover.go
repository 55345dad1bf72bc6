package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SkillFile is the file that marks a directory as a skill.
const SkillFile = "SKILL.md"

// Skill is a single discovered skill document.
type Skill struct {
	Name string // directory name or flat-file stem
	Path string // path to SKILL.md or the flat .md file
}

// Discover lists the skills in dir. Directory skills come first, then flat
// markdown files, each group in lexical order. README.md (any case) is not a
// skill. Names are not de-duplicated; see Duplicates.
func Discover(dir string) ([]Skill, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skills directory %s: %w", dir, err)
	}

	var dirs, flat []Skill
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		// Stat follows links so linked skill directories are found too.
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			skillPath := filepath.Join(path, SkillFile)
			if isFile(skillPath) {
				dirs = append(dirs, Skill{Name: e.Name(), Path: skillPath})
			}
			continue
		}

		if !info.Mode().IsRegular() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		if strings.EqualFold(e.Name(), "readme.md") {
			continue
		}
		flat = append(flat, Skill{Name: strings.TrimSuffix(e.Name(), ".md"), Path: path})
	}

	return append(dirs, flat...), nil
}

// DiscoverDirs lists the immediate subdirectories of dir that hold a
// SKILL.md. Only these can be linked into a tool's skills directory.
func DiscoverDirs(dir string) ([]Skill, error) {
	all, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	var out []Skill
	for _, s := range all {
		if filepath.Base(s.Path) == SkillFile && filepath.Dir(s.Path) == filepath.Join(dir, s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Duplicates returns every skill name that appears more than once, in order
// of first repetition.
func Duplicates(list []Skill) []string {
	seen := make(map[string]int, len(list))
	var dups []string
	for _, s := range list {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
