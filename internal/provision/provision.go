// Package provision runs the automount provisioning pipeline: probe, guard,
// packages, policy, service, media permissions.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"

	"github.com/conn-castle/allsky-automount/internal/config"
	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/guard"
	"github.com/conn-castle/allsky-automount/internal/host"
	"github.com/conn-castle/allsky-automount/internal/media"
	"github.com/conn-castle/allsky-automount/internal/messages"
	"github.com/conn-castle/allsky-automount/internal/packages"
	"github.com/conn-castle/allsky-automount/internal/policy"
	"github.com/conn-castle/allsky-automount/internal/service"
)

// ManagerFactory opens the user service manager for a backend.
type ManagerFactory func(ctx context.Context, backend string, runner execx.Runner) (service.Manager, func(), error)

// Options carries everything the pipeline needs.
type Options struct {
	Config config.Config
	System System
	Runner execx.Runner
	// NewManager defaults to service.NewManager.
	NewManager ManagerFactory
	// WaitForKey overrides the media prompt; nil uses the terminal.
	WaitForKey func(in io.Reader, out io.Writer, prompt string) error
	// TempDir holds the policy render artifact; empty uses os.TempDir.
	TempDir string
	// In feeds the media prompt; nil uses os.Stdin.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Result summarises a successful run.
type Result struct {
	Profile  host.Profile
	Packages packages.Set
	// MediaAdjusted is false when the media directory was absent.
	MediaAdjusted bool
}

// Run executes every step in order and stops at the first error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.System == nil {
		return Result{}, errors.New(messages.ProvisionSystemRequired)
	}
	if opts.Runner == nil {
		return Result{}, errors.New(messages.ProvisionRunnerRequired)
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = io.Discard
	}
	newManager := opts.NewManager
	if newManager == nil {
		newManager = service.NewManager
	}
	cfg := opts.Config
	var result Result

	step(out, messages.ProvisionStepProbe)
	profile, err := host.Probe(ctx, opts.System)
	if err != nil {
		return result, err
	}
	result.Profile = profile
	_, _ = fmt.Fprintf(out, messages.ProvisionHostFmt, profile.Host, profile.User.Name, profile.User.Home)

	markerExists, err := exists(opts.System, cfg.Paths.MarkerFile)
	if err != nil {
		return result, err
	}
	if err := guard.Check(profile.User.UID, cfg.Paths.MarkerFile, markerExists); err != nil {
		return result, err
	}

	step(out, messages.ProvisionStepPackages)
	set, err := packages.Resolve(profile.Host)
	if err != nil {
		return result, err
	}
	if err := packages.Install(ctx, opts.Runner, cfg.Commands.PackageManager, set); err != nil {
		return result, err
	}
	result.Packages = set

	step(out, messages.ProvisionStepPolicy)
	policyInstaller := policy.Installer{
		Runner:       opts.Runner,
		TemplatePath: cfg.Paths.PolicyTemplate,
		TargetPath:   cfg.Paths.PolicyTarget,
		TempDir:      opts.TempDir,
		Out:          out,
	}
	if err := policyInstaller.Install(ctx, profile.User.Name); err != nil {
		return result, err
	}

	step(out, messages.ProvisionStepService)
	manager, release, err := newManager(ctx, cfg.Service.Backend, opts.Runner)
	if err != nil {
		return result, err
	}
	serviceInstaller := service.Installer{
		Manager: manager,
		Source:  cfg.Paths.ServiceUnit,
		Unit:    cfg.Service.Unit,
		Dir:     service.UserUnitDir(profile.User.Home),
		Out:     out,
	}
	err = serviceInstaller.Install(ctx)
	release()
	if err != nil {
		return result, err
	}

	step(out, messages.ProvisionStepMedia)
	adjuster := media.Adjuster{
		Runner:     opts.Runner,
		Root:       cfg.Paths.MediaRoot,
		In:         in,
		Out:        out,
		Warn:       errOut,
		Stat:       opts.System.Stat,
		WaitForKey: opts.WaitForKey,
	}
	adjusted, err := adjuster.Adjust(ctx, profile.User.Name)
	if err != nil {
		return result, err
	}
	result.MediaAdjusted = adjusted

	_, _ = color.New(color.FgGreen).Fprintln(out, messages.ProvisionDone)
	return result, nil
}

func step(out io.Writer, title string) {
	_, _ = color.New(color.Bold).Fprintf(out, messages.ProvisionStepFmt, title)
}

func exists(sys System, path string) (bool, error) {
	_, err := sys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(messages.ProvisionStatFailedFmt, path, err)
}
