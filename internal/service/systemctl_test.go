package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/allsky-automount/internal/config"
	"github.com/conn-castle/allsky-automount/internal/execx/exectest"
)

func TestSystemctlManager(t *testing.T) {
	runner := &exectest.Runner{}
	inst := newInstaller(t, SystemctlManager{Runner: runner})

	require.NoError(t, inst.Install(context.Background()))
	assert.Equal(t, []string{
		"systemctl --user daemon-reload",
		"systemctl --user enable udiskie.service",
		"systemctl --user start udiskie.service",
	}, runner.Commands())
	for _, c := range runner.Calls {
		assert.False(t, c.Sudo, "user units must not be managed as root")
	}
}

func TestSystemctlManager_EnableFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	runner := &exectest.Runner{RunFunc: exectest.FailOn("systemctl --user enable udiskie.service", boom)}
	inst := newInstaller(t, SystemctlManager{Runner: runner})

	assert.ErrorIs(t, inst.Install(context.Background()), boom)
	assert.Len(t, runner.Calls, 2)
}

func TestNewManager_Systemctl(t *testing.T) {
	mgr, release, err := NewManager(context.Background(), config.BackendSystemctl, &exectest.Runner{})
	require.NoError(t, err)
	defer release()
	assert.IsType(t, SystemctlManager{}, mgr)
}

func TestNewManager_UnknownBackend(t *testing.T) {
	_, _, err := NewManager(context.Background(), "upstart", &exectest.Runner{})
	assert.ErrorContains(t, err, "upstart")
}
