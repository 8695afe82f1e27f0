package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/update"
	"github.com/conn-castle/stepup/internal/warnings"
)

// printSummary reports a completed run.
func printSummary(out io.Writer, res update.Result) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, messages.SummaryHeader)
	if final, ok := res.Final(); ok {
		_, _ = fmt.Fprintln(out, color.GreenString(messages.SummaryUpdatedFmt, final))
	}
	_, _ = fmt.Fprintf(out, messages.SummaryPathFmt, res.Chain)
	if len(res.Warnings) == 0 {
		_, _ = fmt.Fprintln(out, messages.SummaryNoWarnings)
		return
	}
	printWarnings(out, res.Warnings)
	_, _ = fmt.Fprintln(out, messages.SummaryWarningsFooter)
}

func printWarnings(out io.Writer, list []warnings.Warning) {
	_, _ = fmt.Fprintln(out, color.YellowString(messages.SummaryWarningCountFmt, len(list)))
	for _, w := range list {
		_, _ = fmt.Fprintln(out, w.Detail())
	}
}

// printFailure reports the halted chain element and where the install stands.
func printFailure(out io.Writer, res update.Result, err error) {
	_, _ = fmt.Fprintln(out, color.RedString(messages.ErrorLineFmt, err))
	var chainErr *update.ChainError
	if errors.As(err, &chainErr) {
		if final, ok := res.Final(); ok {
			_, _ = fmt.Fprintf(out, messages.SummaryHaltedAtFmt, chainErr.Version, final)
		} else {
			_, _ = fmt.Fprintf(out, messages.SummaryHaltedNothingFmt, chainErr.Version)
		}
	}
	if len(res.Warnings) > 0 {
		printWarnings(out, res.Warnings)
	}
}
