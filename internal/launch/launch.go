// Package launch starts the updated application without waiting for it.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
)

var startCommand = func(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Start launches executable from its own directory and returns once the
// process has started.
func Start(executable string) error {
	if strings.TrimSpace(executable) == "" {
		return errors.New(messages.LaunchExecutableRequired)
	}
	info, err := os.Stat(executable)
	if err != nil {
		return fmt.Errorf(messages.LaunchStatFmt, executable, err)
	}
	if info.IsDir() {
		return fmt.Errorf(messages.LaunchIsDirFmt, executable)
	}
	cmd := exec.Command(executable)
	cmd.Dir = filepath.Dir(executable)
	if err := startCommand(cmd); err != nil {
		return fmt.Errorf(messages.LaunchStartFmt, executable, err)
	}
	return nil
}
