package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
)

// resolveUnder joins rel onto root and rejects results that escape root or
// name root itself. rel may use either slash style.
func resolveUnder(root string, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", fmt.Errorf(messages.ApplyPathEmpty)
	}
	slashed := strings.ReplaceAll(rel, `\`, "/")
	if filepath.IsAbs(slashed) || strings.HasPrefix(slashed, "/") || filepath.VolumeName(slashed) != "" {
		return "", fmt.Errorf(messages.ApplyPathAbsoluteFmt, rel)
	}
	cleanRel := filepath.Clean(filepath.FromSlash(slashed))
	if cleanRel == "." {
		return "", fmt.Errorf(messages.ApplyPathIsRootFmt, rel)
	}
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.ApplyPathOutsideRootFmt, rel)
	}
	return filepath.Join(root, cleanRel), nil
}

// contains reports whether child is parent or lies beneath it.
func contains(parent string, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
