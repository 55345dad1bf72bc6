package runtime

import (
	"context"
	"fmt"
	"strings"
)

// Command describes a process to start.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env replaces the process environment when non-nil.
	Env []string
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output captures the result of a command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0
}

// Runner starts commands and looks up executables.
type Runner interface {
	// Run executes cmd. A non-zero exit status is reported in Output, not as
	// an error; the error is reserved for commands that could not start.
	Run(ctx context.Context, cmd Command) (*Output, error)
	// LookPath searches PATH for an executable.
	LookPath(name string) (string, error)
}

// Check runs cmd and turns a non-zero exit status into an error.
func Check(ctx context.Context, r Runner, cmd Command) (*Output, error) {
	out, err := r.Run(ctx, cmd)
	if err != nil {
		return out, err
	}
	if !out.Success() {
		return out, fmt.Errorf("%s exited with status %d", cmd.Name, out.ExitCode)
	}
	return out, nil
}

// SetEnv sets or replaces an environment variable in the env slice.
func SetEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// GetEnv returns the value of key in env, or "" when it is not set.
func GetEnv(env []string, key string) string {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return e[len(prefix):]
		}
	}
	return ""
}
