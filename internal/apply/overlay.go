package apply

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

// overlay copies every file in the work area to the same relative path under the
// install root. The root-level delete-list is skipped. Per-file copy failures and
// unreadable subtrees become warnings; failing to create a target directory stops
// the walk.
func (a *Applier) overlay(target version.Version, res *Result) error {
	_, _ = fmt.Fprintln(a.out, messages.ApplyCopying)
	err := a.sys.WalkDir(a.work, func(path string, d fs.DirEntry, walkErr error) error {
		rel, err := filepath.Rel(a.work, path)
		if err != nil {
			return err
		}
		if walkErr != nil {
			if rel == "." {
				return walkErr
			}
			a.warn(warnings.Warning{
				Code:    warnings.CodeOverlayWalk,
				Version: target.String(),
				Subject: filepath.ToSlash(rel),
				Message: messages.WarnOverlayWalkFailed,
				Err:     walkErr,
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		dest := filepath.Join(a.root, rel)
		if d.IsDir() {
			if err := a.sys.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf(messages.ApplyCreateDirFmt, dest, err)
			}
			return nil
		}
		if rel == a.deleteListName {
			return nil
		}
		if err := a.sys.CopyFile(path, dest); err != nil {
			res.CopyFailed++
			a.warn(warnings.Warning{
				Code:    warnings.CodeFileCopy,
				Version: target.String(),
				Subject: filepath.ToSlash(rel),
				Message: messages.WarnFileCopyFailed,
				Err:     err,
			})
			return nil
		}
		res.Copied++
		return nil
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.out, messages.ApplyCopied)
	return nil
}
