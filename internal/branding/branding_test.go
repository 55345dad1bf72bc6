package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "devsetup"},
		{"HomeDir", HomeDir(), ".devsetup"},
		{"EnvPrefix", EnvPrefix(), "DEVSETUP"},
		{"AIDir", AIDir(), "ai"},
		{"ShellRC", ShellRC(), ".zshrc"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("root"); got != "DEVSETUP_ROOT" {
		t.Errorf("EnvVar(root) = %q, want %q", got, "DEVSETUP_ROOT")
	}
	if got := EnvVar("shell_rc"); got != "DEVSETUP_SHELL_RC" {
		t.Errorf("EnvVar(shell_rc) = %q, want %q", got, "DEVSETUP_SHELL_RC")
	}
}
