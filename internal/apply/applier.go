// Package apply installs one downloaded package over the install root and
// commits the new version to the local marker.
package apply

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/state"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

// Stage names a step of one apply invocation.
type Stage string

// Apply stages in execution order. StageFailed replaces whichever stage was
// running when a hard error occurred.
const (
	StageStaged    Stage = "staged"
	StageExtracted Stage = "extracted"
	StageCleansed  Stage = "cleansed"
	StageOverlaid  Stage = "overlaid"
	StageCommitted Stage = "committed"
	StageFailed    Stage = "failed"
)

// MarkerStore is the version marker as seen by the applier.
type MarkerStore interface {
	Snapshot() (state.Snapshot, error)
	Restore(snap state.Snapshot) error
	Write(v string) error
}

// ArchiveError reports a corrupt or unreadable package.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf(messages.ApplyArchiveErrorFmt, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// StageError reports the hard failure that moved an apply to StageFailed.
type StageError struct {
	Version string
	Stage   Stage
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf(messages.ApplyStageFailedFmt, e.Version, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Options configures an Applier.
type Options struct {
	// InstallRoot receives the overlay and anchors delete-list paths.
	InstallRoot string
	// WorkDir is the temporary extraction area, recreated for every apply.
	WorkDir string
	// DeleteListName is the delete-list file name at the package root.
	DeleteListName string
	// Encoding decodes the delete-list and non-UTF-8 entry names. Nil means UTF-8.
	Encoding encoding.Encoding
	Marker   MarkerStore
	System   System
	Warnings *warnings.Sink
	// Out receives progress lines. Nil discards them.
	Out io.Writer
}

// Result summarizes one apply invocation.
type Result struct {
	Version string
	// Stage is the last stage reached, or StageFailed.
	Stage        Stage
	Extracted    int
	Deleted      int
	DeleteFailed int
	Copied       int
	CopyFailed   int
	// RolledBack is true when the marker was restored after a failure.
	RolledBack bool
}

// Applier runs the apply state machine for one package at a time.
type Applier struct {
	root           string
	work           string
	deleteListName string
	enc            encoding.Encoding
	marker         MarkerStore
	sys            System
	sink           *warnings.Sink
	out            io.Writer
}

// New validates opts and returns an Applier.
func New(opts Options) (*Applier, error) {
	if strings.TrimSpace(opts.InstallRoot) == "" {
		return nil, errors.New(messages.ApplyInstallRootRequired)
	}
	if strings.TrimSpace(opts.WorkDir) == "" {
		return nil, errors.New(messages.ApplyWorkDirRequired)
	}
	if opts.Marker == nil {
		return nil, errors.New(messages.ApplyMarkerRequired)
	}
	root, err := filepath.Abs(opts.InstallRoot)
	if err != nil {
		return nil, fmt.Errorf(messages.ApplyResolvePathFmt, opts.InstallRoot, err)
	}
	work, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf(messages.ApplyResolvePathFmt, opts.WorkDir, err)
	}
	if work == root || contains(work, root) {
		return nil, fmt.Errorf(messages.ApplyWorkDirContainsRootFmt, work, root)
	}
	deleteListName := strings.TrimSpace(opts.DeleteListName)
	if deleteListName != "" && filepath.Base(deleteListName) != deleteListName {
		return nil, fmt.Errorf(messages.ApplyDeleteListNameInvalidFmt, opts.DeleteListName)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Applier{
		root:           root,
		work:           work,
		deleteListName: deleteListName,
		enc:            opts.Encoding,
		marker:         opts.Marker,
		sys:            sys,
		sink:           opts.Warnings,
		out:            out,
	}, nil
}

// Apply installs the package at packagePath as target.
//
// The marker is snapshotted first and only rewritten after the overlay walk has
// finished; per-file delete and copy failures become warnings and do not stop the
// walk. Any other failure restores the snapshot. The work area is removed on
// every path out of Apply.
func (a *Applier) Apply(packagePath string, target version.Version) (Result, error) {
	res := Result{Version: target.String()}
	if !target.Valid() {
		res.Stage = StageFailed
		return res, &StageError{Version: target.String(), Stage: StageStaged, Err: errors.New(messages.ApplyTargetInvalid)}
	}
	_, _ = fmt.Fprintf(a.out, messages.ApplyInstallingFmt, target)

	snapshot, err := a.marker.Snapshot()
	if err != nil {
		res.Stage = StageFailed
		return res, &StageError{Version: target.String(), Stage: StageStaged, Err: err}
	}
	defer a.removeWorkArea(target)

	steps := []struct {
		stage Stage
		run   func() error
	}{
		{StageStaged, a.stage},
		{StageExtracted, func() error { return a.extract(packagePath, &res) }},
		{StageCleansed, func() error { return a.cleanse(target, &res) }},
		{StageOverlaid, func() error { return a.overlay(target, &res) }},
		{StageCommitted, func() error { return a.marker.Write(target.String()) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			res.Stage = StageFailed
			_, _ = fmt.Fprintf(a.out, messages.ApplyFailedFmt, target)
			res.RolledBack = a.rollback(snapshot, target)
			return res, &StageError{Version: target.String(), Stage: step.stage, Err: err}
		}
		res.Stage = step.stage
	}
	_, _ = fmt.Fprintf(a.out, messages.ApplyCommittedFmt, target)
	return res, nil
}

// stage recreates an empty work area.
func (a *Applier) stage() error {
	if err := a.sys.RemoveAll(a.work); err != nil {
		return fmt.Errorf(messages.ApplyResetWorkDirFmt, a.work, err)
	}
	if err := a.sys.MkdirAll(a.work, 0o755); err != nil {
		return fmt.Errorf(messages.ApplyCreateWorkDirFmt, a.work, err)
	}
	return nil
}

// rollback restores the marker snapshot and reports whether it succeeded.
func (a *Applier) rollback(snapshot state.Snapshot, target version.Version) bool {
	if err := a.marker.Restore(snapshot); err != nil {
		a.warn(warnings.Warning{
			Code:    warnings.CodeVersionRestore,
			Version: target.String(),
			Message: messages.WarnVersionRestoreFailed,
			Err:     err,
		})
		return false
	}
	if snapshot.Present {
		_, _ = fmt.Fprintf(a.out, messages.ApplyRestoredFmt, snapshot.Text)
	}
	return true
}

func (a *Applier) removeWorkArea(target version.Version) {
	if _, err := a.sys.Lstat(a.work); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
	}
	_, _ = fmt.Fprintln(a.out, messages.ApplyCleaningTemp)
	if err := a.sys.RemoveAll(a.work); err != nil {
		a.warn(warnings.Warning{
			Code:    warnings.CodeTempCleanup,
			Version: target.String(),
			Subject: a.work,
			Message: messages.WarnTempCleanupFailed,
			Err:     err,
		})
		return
	}
	_, _ = fmt.Fprintln(a.out, messages.ApplyCleanedTemp)
}

func (a *Applier) warn(w warnings.Warning) {
	a.sink.Add(w)
}
