// Package execx runs external commands (package manager, service manager,
// privilege escalation) on behalf of the provisioning steps.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// DefaultSudo is the privilege-escalation wrapper used when none is configured.
const DefaultSudo = "sudo"

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Env holds extra KEY=VALUE pairs for the child.
	Env []string
	// Sudo runs the command through the privilege-escalation wrapper.
	Sudo bool
}

// String renders the command the way an operator would type it.
func (c Command) String() string {
	return c.Render(DefaultSudo)
}

// Render is String with sudo as the escalation binary.
func (c Command) Render(sudo string) string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Sudo {
		parts = append(parts, escalation(sudo))
	}
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Runner executes commands.
type Runner interface {
	// Run executes cmd, streaming its output to the operator.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its trimmed standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}

// CommandError reports a command that could not be started or exited non-zero.
type CommandError struct {
	Command Command
	// ExitCode is the child's exit status, or -1 when it never ran.
	ExitCode int
	Err      error
	// Sudo is the escalation binary the runner used; empty means DefaultSudo.
	Sudo string
}

func (e *CommandError) Error() string {
	line := e.Command.Render(e.Sudo)
	if e.ExitCode >= 0 {
		return fmt.Sprintf(messages.ExecCommandExitFmt, line, e.ExitCode)
	}
	return fmt.Sprintf(messages.ExecCommandFailedFmt, line, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	// SudoPath overrides DefaultSudo.
	SudoPath string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Run executes cmd with stdio attached to the runner's streams.
func (r ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.command(ctx, cmd)
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	return r.wrap(cmd, c.Run())
}

// Output executes cmd and returns its stdout with surrounding whitespace removed.
func (r ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.command(ctx, cmd)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = r.Stderr
	if err := c.Run(); err != nil {
		return "", r.wrap(cmd, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	name, args := r.argv(cmd)
	c := exec.CommandContext(ctx, name, args...) //nolint:gosec // commands are fixed by the provisioning steps
	if !cmd.Sudo && len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

// argv returns the executable and arguments for cmd.
// Escalated commands carry their environment through env(1) since sudo resets it.
func (r ExecRunner) argv(cmd Command) (string, []string) {
	if !cmd.Sudo {
		return cmd.Name, append([]string(nil), cmd.Args...)
	}
	args := make([]string, 0, len(cmd.Env)+len(cmd.Args)+2)
	if len(cmd.Env) > 0 {
		args = append(args, "env")
		args = append(args, cmd.Env...)
	}
	args = append(args, cmd.Name)
	args = append(args, cmd.Args...)
	return escalation(r.SudoPath), args
}

func (r ExecRunner) wrap(cmd Command, err error) error {
	if err == nil {
		return nil
	}
	sudo := escalation(r.SudoPath)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: cmd, ExitCode: exitErr.ExitCode(), Err: err, Sudo: sudo}
	}
	return &CommandError{Command: cmd, ExitCode: -1, Err: err, Sudo: sudo}
}

func escalation(sudo string) string {
	if sudo = strings.TrimSpace(sudo); sudo == "" {
		return DefaultSudo
	}
	return sudo
}
