package messages

// Provisioning step messages.
const (
	// ProvisionStepFmt formats a step header.
	ProvisionStepFmt        = "==> %s\n"
	ProvisionStepProbe      = "Checking host"
	ProvisionStepPackages   = "Installing packages"
	ProvisionStepPolicy     = "Installing polkit rule"
	ProvisionStepService    = "Installing udiskie user service"
	ProvisionStepMedia      = "Setting media permissions"
	ProvisionHostFmt        = "Host: %s, user %s (home %s)\n"
	ProvisionDone           = "USB automount is configured."
	ProvisionSystemRequired = "provision system is required"
	ProvisionRunnerRequired = "provision command runner is required"
	ProvisionStatFailedFmt  = "failed to stat %s: %w"

	// GuardRunAsRoot rejects running as root.
	GuardRunAsRoot        = "do not run as root; run as the allsky user (privileged steps use sudo)"
	GuardMarkerPresentFmt = "%s exists: this platform already provides USB automount"

	// PackagesUnsupportedFmt names a host missing from the package table.
	PackagesUnsupportedFmt   = "unsupported platform: %s %s (%s)"
	PackagesEmptySet         = "package set is empty"
	PackagesRefreshFailedFmt = "refresh package index: %w"
	PackagesInstallFailedFmt = "install packages: %w"

	// PolicyUserRequired indicates the policy needs a user name.
	PolicyUserRequired          = "user name is required to render the policy"
	PolicyPlaceholderMissingFmt = "template does not contain %s"
	PolicyReadTemplateFmt       = "failed to read policy template %s: %w"
	PolicyRenderFmt             = "failed to render policy template %s: %w"
	PolicyInstallFailedFmt      = "install policy %s: %w"

	// ServiceCreateDirFmt formats unit directory creation errors.
	ServiceCreateDirFmt        = "failed to create directory %s: %w"
	ServiceCopyUnitFmt         = "install unit %s: %w"
	ServiceReloadFailedFmt     = "reload user units: %w"
	ServiceEnableFailedFmt     = "enable %s: %w"
	ServiceStartFailedFmt      = "start %s: %w"
	ServiceDBusConnectFmt      = "connect to session bus: %w"
	ServiceNoInstallSectionFmt = "%s has no [Install] section; nothing was enabled"
	ServiceJobLostFmt          = "start job for %s: signal channel closed"
	ServiceJobResultFmt        = "start job for %s finished with result %q"
	ServiceUnknownBackendFmt   = "unknown service backend %q"

	// MediaInsertPrompt asks the operator to insert removable media.
	MediaInsertPrompt   = "Insert a USB drive and wait for it to mount, then press any key to continue..."
	MediaDirMissingFmt  = "%s does not exist yet; re-run allsky-automount after a USB drive has been mounted.\n"
	MediaStatFailedFmt  = "failed to stat %s: %w"
	MediaChmodFailedFmt = "grant traversal on %s: %w"

	// PreviewReplacingFmt introduces the diff of a file about to be replaced.
	PreviewReplacingFmt = "Replacing %s:\n"
)
