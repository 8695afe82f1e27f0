package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "stepup"
	RootShort = "Bring a local install up to the latest published version"
	RootLong  = "stepup installs every published patch package between the local version and the announced latest version, one version at a time.\n\nRunning stepup without a command is the same as 'stepup update'."

	RootConfigFlag = "Path to stepup.toml or a legacy UpdaterConfig.ini (default: next to the binary)"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ErrorLineFmt prefixes an error printed by the CLI.
	ErrorLineFmt = "Error: %v"

	UpdateUse        = "update"
	UpdateShort      = "Install every pending patch package up to the latest version"
	UpdateYesFlag    = "Answer yes to every confirmation and never retry failures"
	UpdateLaunchFlag = "Start the application after updating"

	UpdateChecking          = "Checking for updates..."
	UpdateCurrentFmt        = "Current version: %s\n"
	UpdateLatestFmt         = "Latest version:  %s\n"
	UpdateChainFmt          = "Versions to install: %s\n"
	UpdateMinimumUnknown    = "Warning: the minimum supported version could not be determined; updating may not be supported for this install."
	UpdateContinuePrompt    = "Continue with the update?"
	UpdateDownloadPrompt    = "A new version is available. Download and install it?"
	UpdateUpToDate          = "Already up to date."
	UpdateCancelled         = "Cancelled."
	UpdateRetryPrompt       = "Try again?"
	UpdateRunFailed         = "update did not complete"
	UpdateReinstallRequired = "This install is too old to update online; install the full version instead."
	UpdateChangelogHintFmt  = "See %s for details of this update.\n"
	UpdateProgressFmt       = "\n[%d/%d] Processing version %s\n"
	UpdateVersionDoneFmt    = "Version %s installed.\n"

	SummaryHeader           = "Update summary"
	SummaryUpdatedFmt       = "Updated to version %s"
	SummaryPathFmt          = "Update path: %s\n"
	SummaryNoWarnings       = "All updates completed without warnings."
	SummaryWarningCountFmt  = "%d warning(s) were recorded:"
	SummaryWarningsFooter   = "These warnings usually do not affect the application; contact your administrator if something looks wrong."
	SummaryHaltedAtFmt      = "Update halted at version %s; the install is now at version %s.\n"
	SummaryHaltedNothingFmt = "Update halted at version %s; no version was installed.\n"

	LaunchPrompt   = "Start the application now?"
	LaunchStarting = "Starting the application..."

	CheckUse        = "check"
	CheckShort      = "Show the local and latest versions and the pending update chain"
	CheckJSONFlag   = "Print the result as JSON"
	CheckMinimumFmt = "Minimum supported version: %s\n"

	PreviewUse              = "preview <package.zip>"
	PreviewShort            = "List what a package would delete, add, and overwrite without changing anything"
	PreviewDiffFlag         = "Show unified diffs for overwritten text files"
	PreviewDiffMaxLinesFlag = "Maximum diff lines per file (0 uses the default)"
	PreviewUnchangedFlag    = "Also list files the package would leave unchanged"
	PreviewHeaderFmt        = "Package %s against %s:\n"
	PreviewAddFmt           = "+ %s"
	PreviewDeleteFmt        = "- %s"
	PreviewOverwriteFmt     = "~ %s"
	PreviewUnchangedFmt     = "  %s"
	PreviewRejectedFmt      = "! delete-list entry %q would be skipped"
	PreviewCountsFmt        = "%d added, %d overwritten, %d deleted, %d unchanged\n"

	SetVersionUse        = "set-version <version>"
	SetVersionShort      = "Rewrite the local version marker after a manual repair"
	SetVersionDoneFmt    = "%s: %s -> %s\n"
	SetVersionNoPrevious = "(none)"

	PromptYes                = "Yes"
	PromptNo                 = "No"
	PromptYesDefaultFmt      = "%s [Y/n]: "
	PromptNoDefaultFmt       = "%s [y/N]: "
	PromptRetryYesNo         = "Please answer y or n."
	PromptInvalidResponseFmt = "invalid response %q"

	ProgressLineFmt    = "%s %s %3d%% %s/%s"
	ProgressUnknownFmt = "%s %s"
)
