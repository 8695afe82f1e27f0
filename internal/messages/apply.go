package messages

// Patch application messages.
const (
	ApplyInstallRootRequired      = "install root is required"
	ApplyWorkDirRequired          = "work directory is required"
	ApplyMarkerRequired           = "version marker is required"
	ApplyResolvePathFmt           = "failed to resolve path %s: %w"
	ApplyWorkDirContainsRootFmt   = "work directory %s contains install root %s"
	ApplyDeleteListNameInvalidFmt = "delete-list name %q must be a bare file name"
	ApplyTargetInvalid            = "target version is invalid"
	ApplyArchiveErrorFmt          = "package %s is corrupt or unreadable: %v"
	ApplyStageFailedFmt           = "installing version %s failed at stage %s: %v"
	ApplyArchiveEntryRejectedFmt  = "entry %q: %w"

	ApplyPathEmpty          = "path is empty"
	ApplyPathAbsoluteFmt    = "path %q is absolute"
	ApplyPathIsRootFmt      = "path %q names the root itself"
	ApplyPathOutsideRootFmt = "path %q escapes the root"

	ApplyInstallingFmt    = "Installing version %s...\n"
	ApplyExtracting       = "Extracting package..."
	ApplyRemovingObsolete = "Removing obsolete files..."
	ApplyRemovedObsolete  = "Obsolete files removed."
	ApplyCopying          = "Copying update files..."
	ApplyCopied           = "Update files copied."
	ApplyCommittedFmt     = "Updated to version %s.\n"
	ApplyFailedFmt        = "Installing version %s failed.\n"
	ApplyRestoredFmt      = "Version marker restored to %s.\n"
	ApplyCleaningTemp     = "Cleaning up temporary files..."
	ApplyCleanedTemp      = "Temporary files removed."

	ApplyResetWorkDirFmt   = "failed to clear work directory %s: %w"
	ApplyCreateWorkDirFmt  = "failed to create work directory %s: %w"
	ApplyCreateDirFmt      = "failed to create directory %s: %w"
	ApplyExtractWriteFmt   = "failed to write %s: %w"
	ApplyStatDeleteListFmt = "failed to check delete-list %s: %w"
	ApplyReadDeleteListFmt = "failed to read delete-list %s: %w"

	ApplyPreviewReadFmt      = "failed to read %s: %w"
	ApplyPreviewTruncatedFmt = "... diff truncated after %d lines"
)
