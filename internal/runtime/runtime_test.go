package runtime

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Name: "brew"}, "brew"},
		{Command{Name: "git", Args: []string{"config", "--global", "--unset", "include.path"}}, "git config --global --unset include.path"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSetEnv(t *testing.T) {
	env := []string{"HOME=/home/u", "PATH=/usr/bin"}

	env = SetEnv(env, "PATH", "/opt/homebrew/bin:/usr/bin")
	env = SetEnv(env, "REPO_DIR", "/src/setup")

	if got := GetEnv(env, "PATH"); got != "/opt/homebrew/bin:/usr/bin" {
		t.Errorf("PATH = %q", got)
	}
	if got := GetEnv(env, "REPO_DIR"); got != "/src/setup" {
		t.Errorf("REPO_DIR = %q", got)
	}
	if len(env) != 3 {
		t.Errorf("len(env) = %d, want 3", len(env))
	}
	if got := GetEnv(env, "MISSING"); got != "" {
		t.Errorf("GetEnv(MISSING) = %q, want empty", got)
	}
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello; exit 3"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if out.Stdout != "hello\n" || stdout.String() != "hello\n" {
		t.Errorf("Stdout = %q, streamed %q", out.Stdout, stdout.String())
	}
	if out.Success() {
		t.Error("Success() = true for exit status 3")
	}

	if _, err := Check(context.Background(), r, Command{Name: "sh", Args: []string{"-c", "exit 1"}}); err == nil {
		t.Error("Check returned nil for a failing command")
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if _, err := r.Run(context.Background(), Command{Name: "devsetup-no-such-binary"}); err == nil {
		t.Error("Run returned nil error for a missing binary")
	}
}
