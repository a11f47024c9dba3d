// Package procexec runs external programs for sorting, overlay text and
// key-bound shell commands.
package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"imgmanage/internal/logging"
)

// ExitError reports a program that ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%q exited with status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

const waitDelay = time.Second

// ErrTimeout is returned when a command outlives its deadline.
var ErrTimeout = errors.New("command timed out")

// Runner executes commands through a shell.
type Runner struct {
	Shell     string
	ShellArgs []string
	// Name is passed as $0 to shell scripts.
	Name string
	log  *logging.Logger
}

// NewRunner returns a runner using "sh -c".
func NewRunner(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{Shell: "sh", ShellArgs: []string{"-c"}, Name: "imgmanage", log: log}
}

func (r *Runner) command(ctx context.Context, script string, args []string) *exec.Cmd {
	argv := append(append([]string{}, r.ShellArgs...), script, r.Name)
	argv = append(argv, args...)
	cmd := exec.CommandContext(ctx, r.Shell, argv...)
	// Children of the shell may keep the output pipes open after a kill.
	cmd.WaitDelay = waitDelay
	return cmd
}

// Pipe runs command with lines joined by newlines on its standard input
// and returns its standard output split into lines. A non-zero exit is an
// *ExitError.
func (r *Runner) Pipe(ctx context.Context, command string, lines []string) ([]string, error) {
	r.log.Debug("exec with input", "command", command, "lines", len(lines))
	r.log.Trace("exec input", "command", command, "input", lines)

	cmd := r.command(ctx, command, nil)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := r.wait(ctx, command, cmd, &stderr); err != nil {
		return nil, err
	}
	out := splitLines(stdout.String())
	r.log.Debug("exec output", "command", command, "bytes", stdout.Len(), "lines", len(out))
	return out, nil
}

// Run runs script with args as $1.. and returns combined output. When
// timeout is positive the command is killed after it elapses and
// ErrTimeout is returned along with whatever output was produced.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, script string, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	r.log.Debug("exec", "command", script, "args", args, "timeout", timeout.String())

	cmd := r.command(ctx, script, args)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := r.wait(ctx, script, cmd, &out)
	return out.String(), err
}

func (r *Runner) wait(ctx context.Context, command string, cmd *exec.Cmd, stderr *bytes.Buffer) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		r.log.Warn("command timed out", "command", command)
		return fmt.Errorf("%q: %w", command, ErrTimeout)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Command: command, Code: ee.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("exec %q: %w", command, err)
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
