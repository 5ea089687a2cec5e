// Package media opens the automount directory to the web server once the
// operator has inserted removable media.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/messages"
	"github.com/conn-castle/allsky-automount/internal/terminal"
)

// TraverseMode grants execute (traversal) to owner, group, and other.
const TraverseMode = "ugo+x"

// Adjuster grants traversal on <Root>/<user> after the operator confirms
// that media has been inserted.
type Adjuster struct {
	Runner execx.Runner
	// Root is the directory udisks2 mounts under, normally /media.
	Root string
	In   io.Reader
	Out  io.Writer
	// Warn receives the missing-directory hint; nil uses Out.
	Warn io.Writer
	// Stat defaults to os.Stat.
	Stat func(name string) (fs.FileInfo, error)
	// WaitForKey defaults to terminal.WaitForKey.
	WaitForKey func(in io.Reader, out io.Writer, prompt string) error
}

// Dir returns the per-user mount directory.
func (a Adjuster) Dir(userName string) string {
	return filepath.Join(a.Root, userName)
}

// Adjust blocks until the operator presses a key, then runs an elevated chmod
// ugo+x on the user's mount directory. When the directory does not exist it
// prints a hint and returns adjusted=false with a nil error.
func (a Adjuster) Adjust(ctx context.Context, userName string) (adjusted bool, err error) {
	wait := a.WaitForKey
	if wait == nil {
		wait = terminal.WaitForKey
	}
	stat := a.Stat
	if stat == nil {
		stat = os.Stat
	}

	if err := wait(a.In, a.Out, messages.MediaInsertPrompt); err != nil {
		return false, err
	}

	dir := a.Dir(userName)
	info, err := stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.warnMissing(dir)
		return false, nil
	case err != nil:
		return false, fmt.Errorf(messages.MediaStatFailedFmt, dir, err)
	case !info.IsDir():
		a.warnMissing(dir)
		return false, nil
	}

	cmd := execx.Command{Name: "chmod", Args: []string{TraverseMode, dir}, Sudo: true}
	if err := a.Runner.Run(ctx, cmd); err != nil {
		return false, fmt.Errorf(messages.MediaChmodFailedFmt, dir, err)
	}
	return true, nil
}

func (a Adjuster) warnMissing(dir string) {
	w := a.Warn
	if w == nil {
		w = a.Out
	}
	if w == nil {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintf(w, messages.MediaDirMissingFmt, dir)
}
