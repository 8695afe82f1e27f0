package messages

// Version and chain messages.
const (
	// VersionParseErrorFmt formats strict version parse failures.
	VersionParseErrorFmt       = "invalid version %q: %s"
	VersionReasonEmpty         = "empty version"
	VersionReasonEmptySegment  = "empty segment"
	VersionReasonNonNumericFmt = "segment %q is not a non-negative integer"
	VersionReasonOutOfRangeFmt = "segment %q is out of range"

	// ChainSeparator joins chain elements for display.
	ChainSeparator = " -> "
	ChainEmpty     = "(none)"
)
