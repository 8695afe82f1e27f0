package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/config"
	"github.com/conn-castle/stepup/internal/launch"
	"github.com/conn-castle/stepup/internal/lock"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/prompt"
	"github.com/conn-castle/stepup/internal/remote"
	"github.com/conn-castle/stepup/internal/update"
)

var startApp = launch.Start

type updateOptions struct {
	yes    bool
	launch bool
}

func addUpdateFlags(cmd *cobra.Command, opts *updateOptions) {
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, messages.UpdateYesFlag)
	cmd.Flags().BoolVar(&opts.launch, "launch", false, messages.UpdateLaunchFlag)
}

func newUpdateCmd() *cobra.Command {
	var opts updateOptions
	cmd := &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts)
		},
	}
	addUpdateFlags(cmd, &opts)
	return cmd
}

// session holds the prompting policy for one command invocation.
type session struct {
	out    io.Writer
	errOut io.Writer
	ask    prompt.Prompter
	yes    bool
}

func newSession(cmd *cobra.Command, yes bool) *session {
	s := &session{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), yes: yes}
	if yes {
		s.ask = prompt.Always{Answer: true}
	} else {
		s.ask = prompt.New(cmd.InOrStdin(), s.out, isTerminal())
	}
	return s
}

// confirm asks a question; --yes answers it.
func (s *session) confirm(title string, defaultYes bool) (bool, error) {
	return s.ask.Confirm(title, defaultYes)
}

// retry reports err and asks whether to try the step again. --yes never retries.
func (s *session) retry(err error) bool {
	_, _ = fmt.Fprintln(s.errOut, color.RedString(messages.ErrorLineFmt, err))
	if s.yes {
		return false
	}
	again, promptErr := s.ask.Confirm(messages.UpdateRetryPrompt, false)
	return promptErr == nil && again
}

func runUpdate(cmd *cobra.Command, opts updateOptions) error {
	s := newSession(cmd, opts.yes)

	var settings *config.Settings
	for {
		var err error
		settings, err = loadSettings(cmd)
		if err == nil {
			break
		}
		if !s.retry(err) {
			return &SilentExitError{Code: 1}
		}
	}
	eng, err := newEngine(settings, s.out, s.errOut)
	if err != nil {
		return err
	}
	return lock.With(settings.Root, func() error {
		return updateLoop(cmd, s, eng, opts)
	})
}

func updateLoop(cmd *cobra.Command, s *session, eng *engine, opts updateOptions) error {
	ctx := cmd.Context()
	for {
		_, _ = fmt.Fprintln(s.out, messages.UpdateChecking)
		plan, err := update.Check(ctx, eng.marker, eng.client)
		if err != nil {
			var below *update.BelowMinimumError
			if errors.As(err, &below) {
				_, _ = fmt.Fprintln(s.errOut, color.RedString(messages.ErrorLineFmt, err))
				_, _ = fmt.Fprintln(s.errOut, messages.UpdateReinstallRequired)
				return &SilentExitError{Code: 1}
			}
			if isRecoverable(err) && s.retry(err) {
				continue
			}
			if isRecoverable(err) {
				return &SilentExitError{Code: 1}
			}
			return err
		}

		_, _ = fmt.Fprintf(s.out, messages.UpdateCurrentFmt, plan.LocalText)
		_, _ = fmt.Fprintf(s.out, messages.UpdateLatestFmt, plan.LatestText)
		if !plan.MinimumKnown {
			_, _ = fmt.Fprintln(s.errOut, color.YellowString(messages.UpdateMinimumUnknown))
			ok, err := s.confirm(messages.UpdateContinuePrompt, false)
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(s.out, messages.UpdateCancelled)
				return nil
			}
		}
		if plan.UpToDate {
			_, _ = fmt.Fprintln(s.out, color.GreenString(messages.UpdateUpToDate))
			return offerLaunch(s, eng, opts, false)
		}

		_, _ = fmt.Fprintf(s.out, messages.UpdateChainFmt, plan.Chain)
		ok, err := s.confirm(messages.UpdateDownloadPrompt, true)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(s.out, messages.UpdateCancelled)
			return nil
		}

		res, err := eng.runner.Run(ctx, plan.Chain, plan.Latest)
		if err != nil {
			printFailure(s.errOut, res, err)
			if s.retry(errors.New(messages.UpdateRunFailed)) {
				continue
			}
			return &SilentExitError{Code: 1}
		}
		printSummary(s.out, res)
		return offerLaunch(s, eng, opts, true)
	}
}

// isRecoverable reports whether a check failure is worth offering a retry for.
func isRecoverable(err error) bool {
	return remote.IsRetryable(err) ||
		errors.Is(err, update.ErrLocalUnavailable) ||
		errors.Is(err, update.ErrIncomplete) ||
		errors.Is(err, update.ErrNoChain)
}

// offerLaunch starts the configured executable when --launch is set, or asks
// first when running interactively without --yes.
func offerLaunch(s *session, eng *engine, opts updateOptions, updated bool) error {
	if updated && eng.settings.ChangelogFile != "" {
		_, _ = fmt.Fprintf(s.out, messages.UpdateChangelogHintFmt, eng.settings.ChangelogFile)
	}
	exe := eng.settings.Executable
	if exe == "" {
		return nil
	}
	if !opts.launch {
		if s.yes {
			return nil
		}
		ok, err := s.ask.Confirm(messages.LaunchPrompt, true)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	for {
		_, _ = fmt.Fprintln(s.out, messages.LaunchStarting)
		err := startApp(exe)
		if err == nil {
			return nil
		}
		if !s.retry(err) {
			return &SilentExitError{Code: 1}
		}
	}
}
