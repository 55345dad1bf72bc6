package linker

import "fmt"

// Result records what InstallTool did for one tool.
type Result struct {
	ID   string
	Name string
	// Skipped is set when the tool could not be processed at all.
	Skipped bool
	// Linked lists symlinks created in this run.
	Linked []string
	// Generated lists files written from a generate rule.
	Generated []string
	// BackedUp lists backups made of replaced files and directories.
	BackedUp []string
	// Warnings lists rules that failed or were skipped.
	Warnings []string
}

// OK reports whether every rule of the tool succeeded.
func (r *Result) OK() bool {
	return !r.Skipped && len(r.Warnings) == 0
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
