package service

import (
	"context"

	"github.com/conn-castle/allsky-automount/internal/execx"
)

// SystemctlManager drives the user manager through systemctl --user.
type SystemctlManager struct {
	Runner execx.Runner
}

// Reload runs systemctl --user daemon-reload.
func (m SystemctlManager) Reload(ctx context.Context) error {
	return m.run(ctx, "daemon-reload")
}

// Enable runs systemctl --user enable unit.
func (m SystemctlManager) Enable(ctx context.Context, unit string) error {
	return m.run(ctx, "enable", unit)
}

// Start runs systemctl --user start unit.
func (m SystemctlManager) Start(ctx context.Context, unit string) error {
	return m.run(ctx, "start", unit)
}

func (m SystemctlManager) run(ctx context.Context, args ...string) error {
	return m.Runner.Run(ctx, execx.Command{Name: "systemctl", Args: append([]string{"--user"}, args...)})
}
