// Package policy renders and installs the polkit rule that lets the allsky
// user mount removable media through udisks2.
package policy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/fsutil"
	"github.com/conn-castle/allsky-automount/internal/messages"
)

// Placeholder is replaced by the invoking user's login name.
const Placeholder = "%ALLSKY_USER%"

// Mode is the installed policy file's permission (rw-r--r--).
const Mode os.FileMode = 0o644

// Owner is the installed policy file's owner and group.
const Owner = "root:root"

// Render substitutes every Placeholder in template with userName.
func Render(template []byte, userName string) ([]byte, error) {
	if userName == "" {
		return nil, errors.New(messages.PolicyUserRequired)
	}
	if !bytes.Contains(template, []byte(Placeholder)) {
		return nil, fmt.Errorf(messages.PolicyPlaceholderMissingFmt, Placeholder)
	}
	return bytes.ReplaceAll(template, []byte(Placeholder), []byte(userName)), nil
}

// Installer installs the rendered policy at a root-owned system path.
type Installer struct {
	Runner       execx.Runner
	TemplatePath string
	TargetPath   string
	// TempDir holds the render artifact; empty uses os.TempDir.
	TempDir string
	// Out receives a diff when an existing policy is replaced. Optional.
	Out io.Writer
}

// Install renders the template for userName into a temporary file, copies it
// to TargetPath with elevated privilege, and fixes ownership and mode.
// The temporary file is removed whether or not the privileged steps succeed.
func (i Installer) Install(ctx context.Context, userName string) error {
	template, err := os.ReadFile(i.TemplatePath)
	if err != nil {
		return fmt.Errorf(messages.PolicyReadTemplateFmt, i.TemplatePath, err)
	}
	rendered, err := Render(template, userName)
	if err != nil {
		return fmt.Errorf(messages.PolicyRenderFmt, i.TemplatePath, err)
	}
	if i.Out != nil {
		if diff := fsutil.PreviewReplace(i.TargetPath, rendered, fsutil.DefaultDiffMaxLines); diff != "" {
			_, _ = fmt.Fprintf(i.Out, messages.PreviewReplacingFmt, i.TargetPath)
			_, _ = fmt.Fprint(i.Out, diff)
		}
	}
	return fsutil.WithTempFile(i.TempDir, "allsky-policy-*.pkla", rendered, Mode, func(tmp string) error {
		steps := []execx.Command{
			{Name: "cp", Args: []string{tmp, i.TargetPath}, Sudo: true},
			{Name: "chown", Args: []string{Owner, i.TargetPath}, Sudo: true},
			{Name: "chmod", Args: []string{fmt.Sprintf("%o", uint32(Mode)), i.TargetPath}, Sudo: true},
		}
		for _, step := range steps {
			if err := i.Runner.Run(ctx, step); err != nil {
				return fmt.Errorf(messages.PolicyInstallFailedFmt, i.TargetPath, err)
			}
		}
		return nil
	})
}
