package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conn-castle/allsky-automount/internal/config"
	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/host"
	"github.com/conn-castle/allsky-automount/internal/messages"
	"github.com/conn-castle/allsky-automount/internal/packages"
	"github.com/conn-castle/allsky-automount/internal/provision"
)

var (
	executable   = os.Executable
	getenv       = os.Getenv
	provisionRun = provision.Run
	newSystem    = func(runner execx.Runner) provision.System {
		return provision.RealSystem{RealSystem: host.RealSystem{Runner: runner}}
	}
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			installDir, err := config.ResolveInstallDir(executable, getenv)
			if err != nil {
				return err
			}
			cfg, err := config.Load(installDir)
			if err != nil {
				return err
			}
			runner := execx.ExecRunner{
				SudoPath: cfg.Commands.Sudo,
				Stdin:    cmd.InOrStdin(),
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			}
			_, err = provisionRun(cmd.Context(), provision.Options{
				Config: cfg,
				System: newSystem(runner),
				Runner: runner,
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				Err:    cmd.ErrOrStderr(),
			})
			var unsupported *packages.UnsupportedPlatformError
			if errors.As(err, &unsupported) {
				printSupported(cmd)
			}
			return err
		},
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	return cmd
}

// printSupported lists the recognised distribution releases on stderr.
func printSupported(cmd *cobra.Command) {
	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(out, messages.RootSupportedHeader)
	for _, key := range packages.Supported() {
		_, _ = fmt.Fprintf(out, messages.RootSupportedLineFmt, key.Distribution, key.Release)
	}
}
