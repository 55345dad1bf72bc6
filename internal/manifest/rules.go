package manifest

// Rule is one installation step declared by a tool. The concrete types are
// SettingsTemplateRule, SymlinkRule, SkillsSymlinkRule, SkillsGenerateRule,
// MemoryGenerateRule and ShellAliasRule.
type Rule interface {
	// Kind returns the tools.json key the rule was declared under.
	Kind() string
	isRule()
}

// SettingsTemplateRule creates a settings file from its template.
type SettingsTemplateRule struct{ SettingsTemplate }

// SymlinkRule links a single file or directory from the tool directory.
type SymlinkRule struct{ Symlink }

// SkillsSymlinkRule links skill directories into the config directory.
type SkillsSymlinkRule struct {
	SkillsSymlink
	// ExtraDirs are additional skill source directories, as declared.
	ExtraDirs []string
}

// SkillsGenerateRule renders skills into tool-specific files.
type SkillsGenerateRule struct{ SkillsGenerate }

// MemoryGenerateRule writes the shared memory documents.
type MemoryGenerateRule struct{ MemoryGenerate }

// ShellAliasRule appends an alias to the shell startup file.
type ShellAliasRule struct{ ShellAlias }

func (SettingsTemplateRule) Kind() string { return "settings_template" }
func (SymlinkRule) Kind() string          { return "symlinks" }
func (SkillsSymlinkRule) Kind() string    { return "skills_symlink" }
func (SkillsGenerateRule) Kind() string   { return "skills_generate" }
func (MemoryGenerateRule) Kind() string   { return "memory_generate" }
func (ShellAliasRule) Kind() string       { return "shell_alias" }

func (SettingsTemplateRule) isRule() {}
func (SymlinkRule) isRule()          {}
func (SkillsSymlinkRule) isRule()    {}
func (SkillsGenerateRule) isRule()   {}
func (MemoryGenerateRule) isRule()   {}
func (ShellAliasRule) isRule()       {}

// Rules returns the tool's rules in processing order: the settings template
// first so that symlinked settings exist, then direct symlinks, skill links,
// generated skills, generated memory and finally the shell alias.
func (t *Tool) Rules() []Rule {
	var rules []Rule
	if t.SettingsTemplate != nil {
		rules = append(rules, SettingsTemplateRule{*t.SettingsTemplate})
	}
	for _, s := range t.Symlinks {
		rules = append(rules, SymlinkRule{s})
	}
	if t.SkillsSymlink != nil {
		rules = append(rules, SkillsSymlinkRule{SkillsSymlink: *t.SkillsSymlink, ExtraDirs: t.ExtraSkillsDirs})
	}
	if t.SkillsGenerate != nil {
		rules = append(rules, SkillsGenerateRule{*t.SkillsGenerate})
	}
	if t.MemoryGenerate != nil {
		rules = append(rules, MemoryGenerateRule{*t.MemoryGenerate})
	}
	if t.ShellAlias != nil {
		rules = append(rules, ShellAliasRule{*t.ShellAlias})
	}
	return rules
}

// SkillFormat returns the declared skills format, defaulting to markdown.
func (g SkillsGenerate) SkillFormat() string {
	if g.Format == "" {
		return FormatMarkdown
	}
	return g.Format
}
