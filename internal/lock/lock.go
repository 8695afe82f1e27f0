// Package lock serializes updater runs on one install root.
package lock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/conn-castle/stepup/internal/messages"
)

// FileName is the lock file created at the install root.
const FileName = ".stepup.lock"

// ErrLocked reports that another run holds the lock.
var ErrLocked = errors.New(messages.LockHeld)

type fileLock interface {
	TryLock() (bool, error)
	Unlock() error
}

var newFileLock = func(path string) fileLock {
	return flock.New(path)
}

// Path returns the lock file path for root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// With takes the exclusive lock for root, runs fn, and releases the lock. It
// fails fast with ErrLocked instead of waiting.
func With(root string, fn func() error) error {
	path := Path(root)
	l := newFileLock(path)
	locked, err := l.TryLock()
	if err != nil {
		return fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		_ = l.Unlock()
	}()
	return fn()
}
