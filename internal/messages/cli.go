package messages

// CLI messages for the root command.
const (
	// RootUse is the CLI command name.
	RootUse = "allsky-automount"
	// RootShort is the short description for the root command.
	RootShort = "Configure USB media automount for the allsky camera"
	RootLong  = `Configure automatic mounting of USB storage for the allsky camera.

Installs udisks2, udiskie and filesystem tools for the detected distribution,
installs a polkit rule letting the current user mount removable media, installs
and starts the udiskie user service, then opens /media/<user> to the web server.

Run as the allsky user, not as root. Privileged steps use sudo.`
	RootVersionFlag      = "Print version and exit"
	RootSupportedHeader  = "Supported distributions:"
	RootSupportedLineFmt = "  - %s %s\n"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
)
