package config

// Config holds the optional overrides read from automount.toml.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Commands CommandsConfig `toml:"commands"`
	Service  ServiceConfig  `toml:"service"`
}

// PathsConfig locates the files the provisioning steps read and write.
// Relative template paths are resolved against the install directory.
type PathsConfig struct {
	PolicyTemplate string `toml:"policy_template"`
	PolicyTarget   string `toml:"policy_target"`
	ServiceUnit    string `toml:"service_unit"`
	MarkerFile     string `toml:"marker_file"`
	MediaRoot      string `toml:"media_root"`
}

// CommandsConfig names the external tools invoked on the host.
type CommandsConfig struct {
	Sudo           string `toml:"sudo"`
	PackageManager string `toml:"package_manager"`
}

// ServiceConfig selects how the user service manager is driven.
type ServiceConfig struct {
	Backend string `toml:"backend"`
	Unit    string `toml:"unit"`
}

// Service manager backends.
const (
	BackendDBus      = "dbus"
	BackendSystemctl = "systemctl"
)

// Defaults.
const (
	FileName              = "automount.toml"
	RootEnvVar            = "ALLSKY_AUTOMOUNT_ROOT"
	DefaultPolicyTemplate = "service/udisks2-allsky.pkla"
	DefaultPolicyTarget   = "/etc/polkit-1/localauthority/50-local.d/udisks2-allsky.pkla"
	DefaultServiceUnit    = "service/udiskie.service"
	// DefaultMarkerFile exists on Astroberry, which ships its own automount.
	DefaultMarkerFile     = "/etc/astroberry.version"
	DefaultMediaRoot      = "/media"
	DefaultSudo           = "sudo"
	DefaultPackageManager = "apt-get"
	DefaultUnit           = "udiskie.service"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			PolicyTemplate: DefaultPolicyTemplate,
			PolicyTarget:   DefaultPolicyTarget,
			ServiceUnit:    DefaultServiceUnit,
			MarkerFile:     DefaultMarkerFile,
			MediaRoot:      DefaultMediaRoot,
		},
		Commands: CommandsConfig{
			Sudo:           DefaultSudo,
			PackageManager: DefaultPackageManager,
		},
		Service: ServiceConfig{
			Backend: BackendDBus,
			Unit:    DefaultUnit,
		},
	}
}
