package messages

// Warning texts recorded in the run's warning sink.
const (
	WarningEchoFmt = "Warning: %s\n"

	WarnStalePackageCleanupFailed = "Failed to remove leftover package file"
	WarnPackageCleanupFailed      = "Failed to remove package file"
	WarnObsoleteDeleteFailed      = "Failed to remove obsolete file"
	WarnDeletePathRejected        = "Skipped delete-list entry outside the install root"
	WarnDeletePathWorkArea        = "Skipped delete-list entry covering the temporary work area"
	WarnFileCopyFailed            = "Failed to copy update file"
	WarnOverlayWalkFailed         = "Failed to read part of the extracted package"
	WarnVersionRestoreFailed      = "Failed to restore the version marker"
	WarnTempCleanupFailed         = "Failed to remove temporary files"
	WarnChainShortOfLatest        = "The published versions do not reach the announced latest version; the install stops short of it"
)
