package fetch

import (
	"io"
	"os"

	"github.com/shirou/gopsutil/v3/disk"
)

// System abstracts the filesystem operations used by the fetcher.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Remove(name string) error
	Rename(oldpath string, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
	CreateFile(name string) (io.WriteCloser, error)
	// FreeSpace returns available bytes on the volume holding path.
	FreeSpace(path string) (uint64, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Remove removes the named file.
func (RealSystem) Remove(name string) error {
	return os.Remove(name)
}

// Rename renames oldpath to newpath.
func (RealSystem) Rename(oldpath string, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CreateFile creates or truncates the named file.
func (RealSystem) CreateFile(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

// FreeSpace returns the bytes available to unprivileged users on path's volume.
func (RealSystem) FreeSpace(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
