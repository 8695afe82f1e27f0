package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/terminal"
)

var (
	stdin      io.Reader = os.Stdin
	isTerminal           = terminal.IsInteractive
	executable           = os.Executable
)

const flagConfig = "config"

func newRootCmd() *cobra.Command {
	var opts updateOptions
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts)
		},
	}
	cmd.PersistentFlags().String(flagConfig, "", messages.RootConfigFlag)
	addUpdateFlags(cmd, &opts)

	cmd.AddCommand(
		newUpdateCmd(),
		newCheckCmd(),
		newPreviewCmd(),
		newSetVersionCmd(),
	)
	return cmd
}

// updaterDir returns the directory holding the running binary, where config
// candidates are looked up.
func updaterDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
