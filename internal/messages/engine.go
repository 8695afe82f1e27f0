package messages

// Messages for the version marker, metadata endpoints, and package download.
const (
	StateMarkerMissing   = "local version marker not found"
	StateReadFailedFmt   = "failed to read version marker %s: %w"
	StateWriteFailedFmt  = "failed to write version marker %s: %v"
	StateRemoveFailedFmt = "failed to remove version marker %s: %w"

	TextEncodingUnknownFmt     = "unknown text encoding %q: %w"
	TextEncodingUnsupportedFmt = "text encoding %q is not supported"
	TextDecodeFailedFmt        = "failed to decode %q: %w"

	RemoteCreateRequestFmt = "failed to create request for %s: %w"
	RemoteTimeoutFmt       = "request to %s timed out: %v"
	RemoteConnectionFmt    = "request to %s failed: %v"
	RemoteStatusFmt        = "request to %s returned %s"
	RemoteBodyTooLarge     = "response body too large"

	FetchTemplatePlaceholderFmt = "package URL template %q must contain %s"
	FetchDirRequired            = "package directory is required"
	FetchDownloadingFmt         = "Downloading version %s...\n"
	FetchDownloadedFmt          = "Version %s downloaded.\n"
	FetchRemovingStale          = "Removing leftover package file..."
	FetchCreateRequestFmt       = "failed to create request for %s: %w"
	FetchCreateDirFmt           = "failed to create package directory %s: %w"
	FetchCreateFileFmt          = "failed to create package file %s: %w"
	FetchWriteFileFmt           = "failed to write package file %s: %w"
	FetchRenameFmt              = "failed to move %s to %s: %w"
	FetchShortBodyFmt           = "received %d of %d bytes"
	FetchDiskSpaceFmt           = "not enough disk space in %s: need more than %s, %s free"

	LockHeld       = "another update is already running for this install"
	LockAcquireFmt = "failed to lock %s: %w"

	LaunchExecutableRequired = "no executable configured"
	LaunchStatFmt            = "failed to find executable %s: %w"
	LaunchIsDirFmt           = "executable %s is a directory"
	LaunchStartFmt           = "failed to start %s: %w"

	UpdateLocalUnavailable    = "local version unavailable"
	UpdateIncomplete          = "version info incomplete"
	UpdateIncompleteDetailFmt = "%w (local %q, latest %q, %d published versions)"
	UpdateNoChain             = "no published version leads from the local version to the latest; cannot compute an update path"
	UpdateBelowMinimumFmt     = "local version %s is below the minimum supported version %s"
	UpdateChainHaltedFmt      = "update failed at version %s, chain halted: %v"
)
