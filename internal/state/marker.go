// Package state owns the local version marker, the single durable record of
// which version is installed.
package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/stepup/internal/fsutil"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
)

// ErrMarkerMissing reports that no version marker exists yet.
var ErrMarkerMissing = errors.New(messages.StateMarkerMissing)

// System abstracts the filesystem operations used by the marker.
type System interface {
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Remove(name string) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Remove removes the named file.
func (RealSystem) Remove(name string) error {
	return os.Remove(name)
}

// WriteError reports a failure to persist the version marker.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf(messages.StateWriteFailedFmt, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Snapshot is the marker content captured before an apply, used for rollback.
type Snapshot struct {
	Text    string
	Present bool
}

// Marker reads and writes the plain-text version marker file.
type Marker struct {
	path string
	sys  System
}

// NewMarker returns a marker stored at path. A nil sys uses RealSystem.
func NewMarker(path string, sys System) *Marker {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Marker{path: path, sys: sys}
}

// Path returns the marker file location.
func (m *Marker) Path() string {
	return m.path
}

// Read returns the trimmed marker text, or ErrMarkerMissing when the file does not exist.
func (m *Marker) Read() (string, error) {
	data, err := m.sys.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMarkerMissing, m.path)
		}
		return "", fmt.Errorf(messages.StateReadFailedFmt, m.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Version reads the marker and parses it. A corrupt marker yields Invalid without error.
func (m *Marker) Version() (version.Version, string, error) {
	text, err := m.Read()
	if err != nil {
		return version.Invalid, "", err
	}
	return version.Parse(text), text, nil
}

// Write atomically replaces the marker with v.
func (m *Marker) Write(v string) error {
	if err := m.sys.WriteFileAtomic(m.path, []byte(v), 0o644); err != nil {
		return &WriteError{Path: m.path, Err: err}
	}
	return nil
}

// Snapshot captures the current marker content. A missing marker is a valid,
// absent snapshot; any other read failure is returned.
func (m *Marker) Snapshot() (Snapshot, error) {
	text, err := m.Read()
	if err != nil {
		if errors.Is(err, ErrMarkerMissing) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	return Snapshot{Text: text, Present: true}, nil
}

// Restore puts the marker back to snap. An absent snapshot removes the marker.
func (m *Marker) Restore(snap Snapshot) error {
	if !snap.Present {
		if err := m.sys.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.StateRemoveFailedFmt, m.path, err)
		}
		return nil
	}
	return m.Write(snap.Text)
}
