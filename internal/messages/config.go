package messages

// Configuration loading messages.
const (
	ConfigMissingFileFmt          = "missing config file %s: %w"
	ConfigInvalidConfigFmt        = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt     = "config %s contains unrecognized keys: %v"
	ConfigLegacySectionMissingFmt = "config %s has no [Paths] section"
	ConfigRequiredFmt             = "config %s: %s is required"
	ConfigInvalidURLFmt           = "config %s: %s %q is not a valid URL: %w"
	ConfigURLSchemeFmt            = "unsupported scheme %q (want http or https)"
	ConfigURLHostMissing          = "missing host"
	ConfigTemplatePlaceholderFmt  = "config %s: package URL template %q must contain %s"
	ConfigDeleteListNameFmt       = "config %s: delete-list file %q must be a bare file name"
	ConfigTimeoutNegativeFmt      = "config %s: %s must not be negative"
	ConfigNotFoundFmt             = "no config file found in %s (looked for %s); pass --config"
	ConfigStatFmt                 = "failed to check config %s: %w"
	ConfigResolvePathFmt          = "failed to resolve path %s: %w"
	ConfigExpandHomeFmt           = "failed to expand home directory in %s: %w"
)
