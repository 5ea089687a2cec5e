package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "service", "udisks2-allsky.pkla"), cfg.Paths.PolicyTemplate)
	assert.Equal(t, filepath.Join(dir, "service", "udiskie.service"), cfg.Paths.ServiceUnit)
	assert.Equal(t, DefaultPolicyTarget, cfg.Paths.PolicyTarget)
	assert.Equal(t, "/etc/astroberry.version", cfg.Paths.MarkerFile)
	assert.Equal(t, "/media", cfg.Paths.MediaRoot)
	assert.Equal(t, "sudo", cfg.Commands.Sudo)
	assert.Equal(t, "apt-get", cfg.Commands.PackageManager)
	assert.Equal(t, BackendDBus, cfg.Service.Backend)
	assert.Equal(t, "udiskie.service", cfg.Service.Unit)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	content := `
[paths]
policy_template = "/opt/allsky/policy.pkla"
media_root = "/run/media"

[service]
backend = "systemctl"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/opt/allsky/policy.pkla", cfg.Paths.PolicyTemplate)
	assert.Equal(t, "/run/media", cfg.Paths.MediaRoot)
	assert.Equal(t, BackendSystemctl, cfg.Service.Backend)
	assert.Equal(t, "udiskie.service", cfg.Service.Unit)
	assert.Equal(t, filepath.Join(dir, DefaultServiceUnit), cfg.Paths.ServiceUnit)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("[paths]\nmystery = 1\n"), "automount.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "automount.toml")
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte("[paths\n"), "automount.toml")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"bad backend":       "[service]\nbackend = \"upstart\"\n",
		"unit suffix":       "[service]\nunit = \"udiskie\"\n",
		"unit path":         "[service]\nunit = \"../udiskie.service\"\n",
		"relative target":   "[paths]\npolicy_target = \"etc/x.pkla\"\n",
		"empty sudo":        "[commands]\nsudo = \"\"\n",
		"relative media":    "[paths]\nmedia_root = \"media\"\n",
		"empty pkg manager": "[commands]\npackage_manager = \" \"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content), "automount.toml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation), "got %v", err)
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileName), 0o755))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestResolveInstallDir_Env(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveInstallDir(
		func() (string, error) { return "", errors.New("unused") },
		func(key string) string {
			if key == RootEnvVar {
				return dir
			}
			return ""
		},
	)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveInstallDir_ExecutableParent(t *testing.T) {
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.Mkdir(bin, 0o755))
	exe := filepath.Join(bin, "allsky-automount")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))

	got, err := ResolveInstallDir(func() (string, error) { return exe, nil }, func(string) string { return "" })
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveInstallDir_ExecutableError(t *testing.T) {
	_, err := ResolveInstallDir(func() (string, error) { return "", errors.New("no exe") }, func(string) string { return "" })
	assert.Error(t, err)
}
