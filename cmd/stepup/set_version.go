package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/lock"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
)

func newSetVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.SetVersionUse,
		Short: messages.SetVersionShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.ParseStrict(args[0])
			if err != nil {
				return err
			}
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			marker := newMarker(settings)
			return lock.With(settings.Root, func() error {
				previous, readErr := marker.Read()
				if err := marker.Write(v.String()); err != nil {
					return err
				}
				if readErr != nil {
					previous = messages.SetVersionNoPrevious
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.SetVersionDoneFmt, marker.Path(), previous, v)
				return nil
			})
		},
	}
}
