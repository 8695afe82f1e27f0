package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withIsTerminal(t *testing.T, fn func(fd int) bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = fn
	t.Cleanup(func() { isTerminal = orig })
}

func TestIsInteractive(t *testing.T) {
	withIsTerminal(t, func(int) bool { return true })
	assert.True(t, IsInteractive())

	withIsTerminal(t, func(fd int) bool { return fd == int(os.Stdin.Fd()) })
	assert.False(t, IsInteractive())
}

func TestIsTerminalWriter(t *testing.T) {
	withIsTerminal(t, func(int) bool { return true })
	assert.True(t, IsTerminalWriter(os.Stdout))
	assert.False(t, IsTerminalWriter(&bytes.Buffer{}))
}
