package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/execx/exectest"
	"github.com/conn-castle/allsky-automount/internal/terminal"
)

// chmodRunner applies the elevated chmod to the real directory so the
// resulting permission bits can be asserted.
func chmodRunner() *exectest.Runner {
	return &exectest.Runner{RunFunc: func(cmd execx.Command) error {
		if cmd.Name != "chmod" || cmd.Args[0] != TraverseMode {
			return errors.New("unexpected command " + cmd.String())
		}
		info, err := os.Stat(cmd.Args[1])
		if err != nil {
			return err
		}
		return os.Chmod(cmd.Args[1], info.Mode().Perm()|0o111)
	}}
}

func TestAdjust_GrantsTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "allsky")
	require.NoError(t, os.Mkdir(dir, 0o700))
	require.NoError(t, os.Chmod(dir, 0o700))

	runner := chmodRunner()
	var out bytes.Buffer
	adj := Adjuster{Runner: runner, Root: root, In: strings.NewReader("\n"), Out: &out}

	adjusted, err := adj.Adjust(context.Background(), "allsky")
	require.NoError(t, err)
	assert.True(t, adjusted)
	assert.Equal(t, []string{"sudo chmod ugo+x " + dir}, runner.Commands())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o111), info.Mode().Perm()&0o111)
	assert.Contains(t, out.String(), "press any key")
}

func TestAdjust_MissingDirIsNotAnError(t *testing.T) {
	runner := &exectest.Runner{}
	var out bytes.Buffer
	adj := Adjuster{Runner: runner, Root: t.TempDir(), In: strings.NewReader("x"), Out: &out}

	adjusted, err := adj.Adjust(context.Background(), "allsky")
	require.NoError(t, err)
	assert.False(t, adjusted)
	assert.Empty(t, runner.Calls)
	assert.Contains(t, out.String(), "re-run")
}

func TestAdjust_PathIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "allsky"), nil, 0o644))
	runner := &exectest.Runner{}
	adj := Adjuster{Runner: runner, Root: root, In: strings.NewReader("x"), Out: io.Discard}

	adjusted, err := adj.Adjust(context.Background(), "allsky")
	require.NoError(t, err)
	assert.False(t, adjusted)
	assert.Empty(t, runner.Calls)
}

func TestAdjust_WaitsBeforeChecking(t *testing.T) {
	root := t.TempDir()
	var order []string
	adj := Adjuster{
		Runner: &exectest.Runner{},
		Root:   root,
		Out:    io.Discard,
		WaitForKey: func(io.Reader, io.Writer, string) error {
			order = append(order, "wait")
			// Media is mounted while the operator is being prompted.
			return os.Mkdir(filepath.Join(root, "allsky"), 0o755)
		},
		Stat: func(name string) (fs.FileInfo, error) {
			order = append(order, "stat")
			return os.Stat(name)
		},
	}

	adjusted, err := adj.Adjust(context.Background(), "allsky")
	require.NoError(t, err)
	assert.True(t, adjusted)
	assert.Equal(t, []string{"wait", "stat"}, order)
}

func TestAdjust_InterruptedPrompt(t *testing.T) {
	runner := &exectest.Runner{}
	adj := Adjuster{Runner: runner, Root: t.TempDir(), In: strings.NewReader("\x03"), Out: io.Discard}

	_, err := adj.Adjust(context.Background(), "allsky")
	assert.ErrorIs(t, err, terminal.ErrInterrupted)
	assert.Empty(t, runner.Calls)
}

func TestAdjust_StatError(t *testing.T) {
	boom := errors.New("permission denied")
	adj := Adjuster{
		Runner: &exectest.Runner{},
		Root:   "/media",
		In:     strings.NewReader("x"),
		Out:    io.Discard,
		Stat:   func(string) (fs.FileInfo, error) { return nil, boom },
	}
	_, err := adj.Adjust(context.Background(), "allsky")
	assert.ErrorIs(t, err, boom)
}

func TestAdjust_ChmodFailure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "allsky"), 0o755))
	boom := &execx.CommandError{ExitCode: 1, Err: errors.New("exit status 1")}
	adj := Adjuster{
		Runner: &exectest.Runner{RunFunc: func(execx.Command) error { return boom }},
		Root:   root,
		In:     strings.NewReader("x"),
		Out:    io.Discard,
	}
	adjusted, err := adj.Adjust(context.Background(), "allsky")
	assert.False(t, adjusted)
	assert.ErrorIs(t, err, boom)
}
