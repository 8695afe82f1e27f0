package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/update"
	"github.com/conn-castle/stepup/internal/version"
)

type checkReport struct {
	Local            string   `json:"local"`
	Latest           string   `json:"latest"`
	MinimumSupported string   `json:"minimum_supported,omitempty"`
	MinimumKnown     bool     `json:"minimum_known"`
	UpToDate         bool     `json:"up_to_date"`
	Chain            []string `json:"chain"`
	ReachesLatest    bool     `json:"reaches_latest"`
}

func newCheckCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			plan, err := update.Check(cmd.Context(), newMarker(settings), newClient(settings))
			if err != nil {
				return err
			}
			report := checkReport{
				Local:         plan.LocalText,
				Latest:        plan.LatestText,
				MinimumKnown:  plan.MinimumKnown,
				UpToDate:      plan.UpToDate,
				Chain:         plan.Chain.Strings(),
				ReachesLatest: plan.UpToDate || plan.Chain.ReachesTarget(plan.Latest),
			}
			if report.Chain == nil {
				report.Chain = []string{}
			}
			if plan.MinimumKnown {
				report.MinimumSupported = version.Format(plan.Minimum)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			_, _ = fmt.Fprintf(out, messages.UpdateCurrentFmt, report.Local)
			_, _ = fmt.Fprintf(out, messages.UpdateLatestFmt, report.Latest)
			if plan.MinimumKnown {
				_, _ = fmt.Fprintf(out, messages.CheckMinimumFmt, report.MinimumSupported)
			} else {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.UpdateMinimumUnknown))
			}
			if plan.UpToDate {
				_, _ = fmt.Fprintln(out, color.GreenString(messages.UpdateUpToDate))
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.UpdateChainFmt, plan.Chain)
			if !report.ReachesLatest {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.WarnChainShortOfLatest))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.CheckJSONFlag)
	return cmd
}
