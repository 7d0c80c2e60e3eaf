package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one external command at a time in a working directory.
// Every external process the CLI touches goes through this interface, so
// tests can substitute a recording implementation instead of spawning.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExitError reports a child process that ran but exited non-zero.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Cmd, e.Code)
}

// ExecRunner runs real processes, relaying the parent's standard streams
// directly to the child. Stdin is forwarded so interactive sub-processes
// (e.g., `npm init` without -y) can still receive answers.
type ExecRunner struct {
	// Stdin, Stdout, and Stderr can be set for testing; they default to the
	// process-wide standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args in dir and blocks until it exits. It returns
// nil on exit code 0, an *ExitError on a non-zero exit, and the spawn error
// itself when the process could not be started (e.g., command not found).
// Stream wiring is owned by exec.Cmd, so it is torn down on every path.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Cmd:  strings.Join(append([]string{name}, args...), " "),
			Code: exitErr.ExitCode(),
		}
	}
	return fmt.Errorf("running %s: %w", name, err)
}
