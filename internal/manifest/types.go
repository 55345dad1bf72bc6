package manifest

// ConfigFile is the name of the tool configuration document inside the AI
// root.
const ConfigFile = "tools.json"

// ToolsConfig is the decoded tools.json document.
type ToolsConfig struct {
	// Requires is an optional semver constraint on the devsetup version.
	Requires string `json:"requires,omitempty" yaml:"requires,omitempty"`
	// Tools holds every declared tool in declaration order.
	Tools []*Tool `json:"-" yaml:"tools"`
	// Advisories are the schema issues Load tolerated.
	Advisories []ValidationIssue `json:"-" yaml:"-"`
}

// Lookup returns the tool with the given id.
func (c *ToolsConfig) Lookup(id string) (*Tool, bool) {
	for _, t := range c.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// IDs returns the tool ids in declaration order.
func (c *ToolsConfig) IDs() []string {
	ids := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		ids[i] = t.ID
	}
	return ids
}

// Tool is a single entry of the tools map.
type Tool struct {
	ID               string            `json:"-" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	ConfigDir        string            `json:"config_dir" yaml:"config_dir"`
	ToolDir          string            `json:"tool_dir" yaml:"tool_dir"`
	Symlinks         []Symlink         `json:"symlinks,omitempty" yaml:"symlinks,omitempty"`
	SettingsTemplate *SettingsTemplate `json:"settings_template,omitempty" yaml:"settings_template,omitempty"`
	SkillsSymlink    *SkillsSymlink    `json:"skills_symlink,omitempty" yaml:"skills_symlink,omitempty"`
	ExtraSkillsDirs  []string          `json:"extra_skills_dirs,omitempty" yaml:"extra_skills_dirs,omitempty"`
	SkillsGenerate   *SkillsGenerate   `json:"skills_generate,omitempty" yaml:"skills_generate,omitempty"`
	MemoryGenerate   *MemoryGenerate   `json:"memory_generate,omitempty" yaml:"memory_generate,omitempty"`
	ShellAlias       *ShellAlias       `json:"shell_alias,omitempty" yaml:"shell_alias,omitempty"`
}

// Symlink links Source, relative to the tool directory, to Target, relative
// to the config directory.
type Symlink struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// SettingsTemplate names a settings file inside the tool directory that is
// created from Template when missing.
type SettingsTemplate struct {
	Template string `json:"template" yaml:"template"`
	Target   string `json:"target" yaml:"target"`
}

// SkillsSymlink links each skill directory under Source, relative to the AI
// root, into Target inside the config directory.
type SkillsSymlink struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// SkillsGenerate renders the skills under Source into Target in Format.
type SkillsGenerate struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MemoryGenerate writes the memory documents under Source to Target.
type MemoryGenerate struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Mode   string `json:"mode" yaml:"mode"`
}

// ShellAlias is appended to the shell startup file once.
type ShellAlias struct {
	Alias   string `json:"alias" yaml:"alias"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Skill output formats.
const (
	FormatTOML     = "toml"
	FormatMarkdown = "md"
)

// Memory output modes.
const (
	ModeSingleFile = "single_file"
	ModeDirectory  = "directory"
)
