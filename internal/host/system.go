package host

import (
	"context"
	"os"
	"os/user"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/sys/unix"

	"github.com/conn-castle/allsky-automount/internal/execx"
)

// System abstracts the host queries needed by Probe.
type System interface {
	Output(ctx context.Context, cmd execx.Command) (string, error)
	ReadFile(name string) ([]byte, error)
	Machine() (string, error)
	CurrentUser() (*user.User, error)
	HomeDir() (string, error)
}

// RealSystem implements System against the running host.
type RealSystem struct {
	Runner execx.Runner
}

// Output runs cmd through the configured runner.
func (s RealSystem) Output(ctx context.Context, cmd execx.Command) (string, error) {
	return s.Runner.Output(ctx, cmd)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Machine returns the uname(2) machine field, e.g. x86_64 or aarch64.
func (RealSystem) Machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}

// CurrentUser returns the account the process runs as.
func (RealSystem) CurrentUser() (*user.User, error) {
	return user.Current()
}

// HomeDir returns the invoking user's home directory, honouring $HOME.
func (RealSystem) HomeDir() (string, error) {
	return homedir.Dir()
}
