package messages

// System messages for internal operations.
const (
	// HostSystemRequired indicates Probe was called without a System.
	HostSystemRequired      = "host system is required"
	HostProfileFmt          = "%s %s (%s)"
	HostEnvironmentErrorFmt = "cannot determine %s: %v"
	HostOSReleaseMissingFmt = "%s missing from %s"
	HostEmptyUsername       = "empty user name"
	HostWhatDistribution    = "distribution"
	HostWhatRelease         = "distribution release"
	HostWhatArch            = "CPU architecture"
	HostWhatUser            = "current user"
	HostWhatHome            = "home directory"

	// OSReleaseLineErrorFmt formats os-release parse errors by line.
	OSReleaseLineErrorFmt            = "os-release line %d: %w"
	OSReleaseReadFailedFmt           = "read os-release: %w"
	OSReleaseExpectedKeyValue        = "expected KEY=VALUE"
	OSReleaseUnterminatedQuotedValue = "unterminated quoted value"
	OSReleaseInvalidQuotedSuffix     = "unexpected characters after quoted value"

	// ExecCommandExitFmt formats a command that exited non-zero.
	ExecCommandExitFmt   = "%s: exit status %d"
	ExecCommandFailedFmt = "%s: %v"

	// FsutilCreateTempFmt formats temp file creation errors.
	FsutilCreateTempFmt = "create temp file: %w"
	FsutilWriteTempFmt  = "write temp file %s: %w"
	FsutilRemoveTempFmt = "remove temp file %s: %w"
	FsutilChmodFmt      = "chmod %s: %w"
	FsutilReadFmt       = "failed to read %s: %w"
	FsutilWriteFmt      = "failed to write %s: %w"

	// TerminalInterrupted reports Ctrl+C at a prompt.
	TerminalInterrupted = "interrupted"
	TerminalRawModeFmt  = "enable raw terminal mode: %w"
	TerminalReadKeyFmt  = "read key: %w"

	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt        = "failed to read %s: %w"
	ConfigInvalidFmt           = "invalid config %s: %w"
	ConfigResolveInstallDirFmt = "resolve install directory: %w"
	ConfigFieldRequiredFmt     = "%s: %s is required"
	ConfigPathNotAbsoluteFmt   = "%s: %s must be an absolute path (got %q)"
	ConfigBackendInvalidFmt    = "%s: service.backend must be \"dbus\" or \"systemctl\" (got %q)"
	ConfigUnitInvalidFmt       = "%s: service.unit must be a unit file name ending in .service (got %q)"
)
