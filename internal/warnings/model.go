// Package warnings collects the non-fatal diagnostics of a single update run.
package warnings

import (
	"fmt"
	"strings"
)

// Warning codes.
const (
	CodeStalePackageCleanup = "STALE_PACKAGE_CLEANUP_FAILED"
	CodeObsoleteDelete      = "OBSOLETE_FILE_DELETE_FAILED"
	CodeDeletePathRejected  = "DELETE_PATH_REJECTED"
	CodeFileCopy            = "UPDATE_FILE_COPY_FAILED"
	CodeOverlayWalk         = "UPDATE_TREE_WALK_FAILED"
	CodeVersionRestore      = "VERSION_RESTORE_FAILED"
	CodeTempCleanup         = "TEMP_CLEANUP_FAILED"
	CodePackageCleanup      = "PACKAGE_CLEANUP_FAILED"
	CodeChainShortOfLatest  = "CHAIN_SHORT_OF_LATEST"
)

// Warning represents one recorded, non-fatal diagnostic.
type Warning struct {
	Code string
	// Version is the chain element being processed when the warning was raised, if any.
	Version string
	// Subject is the file or resource the warning is about.
	Subject string
	Message string
	Err     error
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Message)
	if w.Subject != "" {
		fmt.Fprintf(&b, " (%s)", w.Subject)
	}
	if w.Err != nil {
		fmt.Fprintf(&b, ": %v", w.Err)
	}
	return b.String()
}

// Detail renders the warning with its code and version context.
func (w Warning) Detail() string {
	s := "WARNING " + w.Code + ": " + w.String()
	if w.Version != "" {
		s += "\n  version: " + w.Version
	}
	return s
}
