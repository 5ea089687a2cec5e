package service

import (
	"context"
	"fmt"

	"github.com/conn-castle/allsky-automount/internal/config"
	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/messages"
)

// NewManager returns the manager for backend and a function releasing it.
func NewManager(ctx context.Context, backend string, runner execx.Runner) (Manager, func(), error) {
	switch backend {
	case config.BackendDBus:
		m, err := ConnectDBus(ctx)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = m.Close() }, nil
	case config.BackendSystemctl:
		return SystemctlManager{Runner: runner}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf(messages.ServiceUnknownBackendFmt, backend)
	}
}
