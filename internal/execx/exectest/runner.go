// Package exectest provides a recording execx.Runner for tests.
package exectest

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/allsky-automount/internal/execx"
)

// ErrNotMocked is returned by Output when no OutputFunc is configured.
var ErrNotMocked = errors.New("exectest: method not mocked")

// Runner records every command it is asked to execute.
//
// Run succeeds unless RunFunc is set. Output fails fast unless OutputFunc is
// set, since probed values should never come from the real host in tests.
type Runner struct {
	Calls      []execx.Command
	RunFunc    func(cmd execx.Command) error
	OutputFunc func(cmd execx.Command) (string, error)
}

// Run records cmd and returns RunFunc's result.
func (r *Runner) Run(_ context.Context, cmd execx.Command) error {
	r.Calls = append(r.Calls, cmd)
	if r.RunFunc != nil {
		return r.RunFunc(cmd)
	}
	return nil
}

// Output records cmd and returns OutputFunc's result.
func (r *Runner) Output(_ context.Context, cmd execx.Command) (string, error) {
	r.Calls = append(r.Calls, cmd)
	if r.OutputFunc != nil {
		return r.OutputFunc(cmd)
	}
	return "", fmt.Errorf("%w: Output %s", ErrNotMocked, cmd)
}

// Commands renders the recorded calls as command lines.
func (r *Runner) Commands() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.String())
	}
	return out
}

// FailOn returns a RunFunc that fails with err for the command rendered as line.
func FailOn(line string, err error) func(cmd execx.Command) error {
	return func(cmd execx.Command) error {
		if cmd.String() == line {
			return err
		}
		return nil
	}
}
