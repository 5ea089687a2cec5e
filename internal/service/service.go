// Package service installs the udiskie user unit and drives the per-user
// systemd instance to load, enable, and start it.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/conn-castle/allsky-automount/internal/fsutil"
	"github.com/conn-castle/allsky-automount/internal/messages"
)

// UnitMode is the installed unit file's permission (rw-r--r--).
const UnitMode os.FileMode = 0o644

// Manager is the per-user service manager.
type Manager interface {
	// Reload re-reads unit definitions.
	Reload(ctx context.Context) error
	// Enable makes unit start with the user session.
	Enable(ctx context.Context, unit string) error
	// Start starts unit and waits for the start job to finish.
	Start(ctx context.Context, unit string) error
}

// UserUnitDir returns the per-user unit directory under home.
func UserUnitDir(home string) string {
	return filepath.Join(home, ".config", "systemd", "user")
}

// Installer copies a unit file into the user's unit directory and starts it.
type Installer struct {
	Manager Manager
	// Source is the unit file in the install tree.
	Source string
	// Unit is the installed unit name.
	Unit string
	// Dir is the user unit directory, see UserUnitDir.
	Dir string
	// Out receives a diff when an existing unit is replaced. Optional.
	Out io.Writer
}

// Install copies the unit byte-for-byte, then reloads, enables, and starts it
// in that order. The first failure aborts; earlier steps are not undone.
func (i Installer) Install(ctx context.Context) error {
	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return fmt.Errorf(messages.ServiceCreateDirFmt, i.Dir, err)
	}
	target := filepath.Join(i.Dir, i.Unit)
	if i.Out != nil {
		if data, err := os.ReadFile(i.Source); err == nil {
			if diff := fsutil.PreviewReplace(target, data, fsutil.DefaultDiffMaxLines); diff != "" {
				_, _ = fmt.Fprintf(i.Out, messages.PreviewReplacingFmt, target)
				_, _ = fmt.Fprint(i.Out, diff)
			}
		}
	}
	if err := fsutil.CopyFile(i.Source, target, UnitMode); err != nil {
		return fmt.Errorf(messages.ServiceCopyUnitFmt, i.Unit, err)
	}
	if err := i.Manager.Reload(ctx); err != nil {
		return fmt.Errorf(messages.ServiceReloadFailedFmt, err)
	}
	if err := i.Manager.Enable(ctx, i.Unit); err != nil {
		return fmt.Errorf(messages.ServiceEnableFailedFmt, i.Unit, err)
	}
	if err := i.Manager.Start(ctx, i.Unit); err != nil {
		return fmt.Errorf(messages.ServiceStartFailedFmt, i.Unit, err)
	}
	return nil
}
