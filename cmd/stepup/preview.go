package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/apply"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/textenc"
)

func newPreviewCmd() *cobra.Command {
	var (
		showDiff  bool
		maxLines  int
		unchanged bool
	)
	cmd := &cobra.Command{
		Use:   messages.PreviewUse,
		Short: messages.PreviewShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			enc, err := textenc.Lookup(settings.TextEncoding)
			if err != nil {
				return err
			}
			preview, err := apply.BuildPreview(args[0], apply.PreviewOptions{
				InstallRoot:    settings.Root,
				DeleteListName: settings.DeleteListName,
				Encoding:       enc,
				Diff:           showDiff,
				DiffMaxLines:   maxLines,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.PreviewHeaderFmt, preview.Package, settings.Root)
			counts := map[apply.ChangeKind]int{}
			for _, change := range preview.Changes {
				counts[change.Kind]++
				switch change.Kind {
				case apply.ChangeAdd:
					_, _ = fmt.Fprintln(out, color.GreenString(messages.PreviewAddFmt, change.Path))
				case apply.ChangeDelete:
					_, _ = fmt.Fprintln(out, color.RedString(messages.PreviewDeleteFmt, change.Path))
				case apply.ChangeOverwrite:
					_, _ = fmt.Fprintln(out, color.YellowString(messages.PreviewOverwriteFmt, change.Path))
					if change.UnifiedDiff != "" {
						_, _ = fmt.Fprint(out, change.UnifiedDiff)
					}
				case apply.ChangeUnchanged:
					if unchanged {
						_, _ = fmt.Fprintf(out, messages.PreviewUnchangedFmt+"\n", change.Path)
					}
				}
			}
			for _, entry := range preview.Rejected {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.PreviewRejectedFmt, entry))
			}
			_, _ = fmt.Fprintf(out, messages.PreviewCountsFmt,
				counts[apply.ChangeAdd], counts[apply.ChangeOverwrite], counts[apply.ChangeDelete], counts[apply.ChangeUnchanged])
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.PreviewDiffFlag)
	cmd.Flags().IntVar(&maxLines, "diff-max-lines", 0, messages.PreviewDiffMaxLinesFlag)
	cmd.Flags().BoolVar(&unchanged, "unchanged", false, messages.PreviewUnchangedFlag)
	return cmd
}
