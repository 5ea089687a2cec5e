package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// ErrConfigValidation wraps config validation failures, as opposed to
// TOML syntax or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads <installDir>/automount.toml over the defaults and validates the
// result. A missing file yields the defaults.
func Load(installDir string) (Config, error) {
	path := filepath.Join(installDir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data = nil
	} else if err != nil {
		return Config{}, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.resolve(installDir)
	return cfg, nil
}

// Parse decodes TOML data over the defaults, rejecting unknown keys.
// source is used in error messages.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
		}
	}
	if err := cfg.Validate(source); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// resolve anchors relative template paths at installDir.
func (c *Config) resolve(installDir string) {
	if !filepath.IsAbs(c.Paths.PolicyTemplate) {
		c.Paths.PolicyTemplate = filepath.Join(installDir, c.Paths.PolicyTemplate)
	}
	if !filepath.IsAbs(c.Paths.ServiceUnit) {
		c.Paths.ServiceUnit = filepath.Join(installDir, c.Paths.ServiceUnit)
	}
}

// ResolveInstallDir returns the tool's installation directory: the value of
// ALLSKY_AUTOMOUNT_ROOT when set, otherwise the parent of the directory that
// holds the executable.
func ResolveInstallDir(executable func() (string, error), getenv func(string) string) (string, error) {
	if root := strings.TrimSpace(getenv(RootEnvVar)); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf(messages.ConfigResolveInstallDirFmt, err)
		}
		return abs, nil
	}
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveInstallDirFmt, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
