package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

var validBackends = map[string]struct{}{
	BackendDBus:      {},
	BackendSystemctl: {},
}

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(source string) error {
	required := []struct {
		key   string
		value string
	}{
		{"paths.policy_template", c.Paths.PolicyTemplate},
		{"paths.policy_target", c.Paths.PolicyTarget},
		{"paths.service_unit", c.Paths.ServiceUnit},
		{"paths.marker_file", c.Paths.MarkerFile},
		{"paths.media_root", c.Paths.MediaRoot},
		{"commands.sudo", c.Commands.Sudo},
		{"commands.package_manager", c.Commands.PackageManager},
		{"service.unit", c.Service.Unit},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, field.key)
		}
	}

	absolute := map[string]string{
		"paths.policy_target": c.Paths.PolicyTarget,
		"paths.marker_file":   c.Paths.MarkerFile,
		"paths.media_root":    c.Paths.MediaRoot,
	}
	for key, value := range absolute {
		if !filepath.IsAbs(value) {
			return fmt.Errorf(messages.ConfigPathNotAbsoluteFmt, source, key, value)
		}
	}

	if _, ok := validBackends[c.Service.Backend]; !ok {
		return fmt.Errorf(messages.ConfigBackendInvalidFmt, source, c.Service.Backend)
	}
	if strings.ContainsRune(c.Service.Unit, '/') || !strings.HasSuffix(c.Service.Unit, ".service") {
		return fmt.Errorf(messages.ConfigUnitInvalidFmt, source, c.Service.Unit)
	}
	return nil
}
